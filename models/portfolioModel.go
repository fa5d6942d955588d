package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Portfolio is the public profile aggregate of one artist. Version is bumped
// on every save and used as a compare-and-swap guard.
type Portfolio struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ArtistID       string             `bson:"artistId" json:"artistId"`
	BasicDetails   BasicDetails       `bson:"basicDetails" json:"basicDetails"`
	Experience     []Experience       `bson:"experience" json:"experience"`
	Specialization Specialization     `bson:"specialization" json:"specialization"`
	Artworks       []Artwork          `bson:"artworks" json:"artworks"`
	Awards         []Award            `bson:"awards" json:"awards"`
	Projects       []Project          `bson:"projects" json:"projects"`
	Ratings        Ratings            `bson:"ratings" json:"ratings"`
	Version        int64              `bson:"version" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewPortfolio returns an empty portfolio with non-nil sections.
func NewPortfolio(artistID string, now time.Time) *Portfolio {
	return &Portfolio{
		ArtistID:   artistID,
		Experience: []Experience{},
		Artworks:   []Artwork{},
		Awards:     []Award{},
		Projects:   []Project{},
		Ratings:    Ratings{RatingBreakdown: []RatingBucket{}, Reviews: []Review{}},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

type BasicDetails struct {
	FullName     string      `bson:"fullName" json:"fullName" validate:"omitempty,max=120"`
	Tagline      string      `bson:"tagline,omitempty" json:"tagline,omitempty" validate:"omitempty,max=200"`
	Bio          string      `bson:"bio" json:"bio" validate:"omitempty,max=5000"`
	Location     string      `bson:"location" json:"location" validate:"omitempty,max=200"`
	ProfileImage string      `bson:"profileImage" json:"profileImage" validate:"omitempty,url"`
	CoverImage   string      `bson:"coverImage,omitempty" json:"coverImage,omitempty" validate:"omitempty,url"`
	Email        string      `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	Phone        string      `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,max=20"`
	Website      string      `bson:"website,omitempty" json:"website,omitempty" validate:"omitempty,url"`
	SocialLinks  SocialLinks `bson:"socialLinks" json:"socialLinks"`
}

type SocialLinks struct {
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Behance   string `bson:"behance,omitempty" json:"behance,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
}

type Specialization struct {
	Primary string   `bson:"primary" json:"primary" validate:"omitempty,max=100"`
	Skills  []string `bson:"skills" json:"skills" validate:"max=50,dive,max=60"`
	Styles  []string `bson:"styles,omitempty" json:"styles,omitempty" validate:"max=50,dive,max=60"`
	Mediums []string `bson:"mediums,omitempty" json:"mediums,omitempty" validate:"max=50,dive,max=60"`
}

type Experience struct {
	ID           string `bson:"id" json:"id"`
	Title        string `bson:"title" json:"title" validate:"required,max=150"`
	Organization string `bson:"organization" json:"organization" validate:"omitempty,max=150"`
	StartDate    string `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate      string `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Current      bool   `bson:"current" json:"current"`
	Description  string `bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,max=2000"`
}

type Artwork struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title" validate:"required,max=150"`
	Description string    `bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    string    `bson:"imageUrl" json:"imageUrl"`
	PublicID    string    `bson:"publicId,omitempty" json:"publicId,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Medium      string    `bson:"medium,omitempty" json:"medium,omitempty"`
	Year        string    `bson:"year,omitempty" json:"year,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

type Award struct {
	ID          string `bson:"id" json:"id"`
	Title       string `bson:"title" json:"title" validate:"required,max=150"`
	Issuer      string `bson:"issuer,omitempty" json:"issuer,omitempty" validate:"omitempty,max=150"`
	Year        string `bson:"year,omitempty" json:"year,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,max=2000"`
}

type Project struct {
	ID          string   `bson:"id" json:"id"`
	Title       string   `bson:"title" json:"title" validate:"required,max=150"`
	Client      string   `bson:"client,omitempty" json:"client,omitempty" validate:"omitempty,max=150"`
	Description string   `bson:"description,omitempty" json:"description,omitempty" validate:"omitempty,max=5000"`
	Images      []string `bson:"images,omitempty" json:"images,omitempty" validate:"max=20,dive,url"`
	Link        string   `bson:"link,omitempty" json:"link,omitempty" validate:"omitempty,url"`
	Year        string   `bson:"year,omitempty" json:"year,omitempty"`
}

type Ratings struct {
	CurrentRating   float64        `bson:"currentRating" json:"currentRating"`
	TotalReviews    int            `bson:"totalReviews" json:"totalReviews"`
	RatingBreakdown []RatingBucket `bson:"ratingBreakdown" json:"ratingBreakdown"`
	Reviews         []Review       `bson:"reviews" json:"reviews"`
}

type RatingBucket struct {
	Stars      int `bson:"stars" json:"stars"`
	Count      int `bson:"count" json:"count"`
	Percentage int `bson:"percentage" json:"percentage"`
}

// Review is the embedded copy of a feedback document. ID matches
// Feedback.ReviewID.
type Review struct {
	ID          string    `bson:"id" json:"id"`
	ClientName  string    `bson:"clientName" json:"clientName"`
	ClientEmail string    `bson:"clientEmail,omitempty" json:"-"`
	Rating      int       `bson:"rating" json:"rating"`
	Comment     string    `bson:"comment" json:"comment"`
	ProjectType string    `bson:"projectType,omitempty" json:"projectType,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// PortfolioSummary is the listing view used by the public portfolio index.
type PortfolioSummary struct {
	ArtistID      string  `json:"artistId"`
	FullName      string  `json:"fullName"`
	Tagline       string  `json:"tagline,omitempty"`
	ProfileImage  string  `json:"profileImage,omitempty"`
	Primary       string  `json:"specialization,omitempty"`
	CurrentRating float64 `json:"currentRating"`
	TotalReviews  int     `json:"totalReviews"`
	Completion    int     `json:"completion"`
}
