package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ishanbagra18/artfolio-server/database"
	"github.com/ishanbagra18/artfolio-server/helpers"
	"github.com/ishanbagra18/artfolio-server/models"
	"go.uber.org/zap"
)

// maxSaveAttempts bounds the read-modify-write loop on version conflicts.
const maxSaveAttempts = 3

var (
	errItemNotFound = errors.New("item not found")
	// errNoChange lets a mutation finish without writing.
	errNoChange = errors.New("no change")
)

// mutatePortfolio loads the artist's portfolio, applies fn and saves it with
// the version guard, retrying on conflict. With create set a missing
// portfolio starts out empty; otherwise it is ErrNotFound.
func mutatePortfolio(ctx context.Context, store PortfolioStore, artistID string, now time.Time, create bool, fn func(*models.Portfolio) error) (*models.Portfolio, error) {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		p, err := store.Get(ctx, artistID)
		switch {
		case errors.Is(err, database.ErrNotFound) && create:
			p = models.NewPortfolio(artistID, now)
		case err != nil:
			return nil, err
		}

		if err := fn(p); err != nil {
			if errors.Is(err, errNoChange) {
				return p, nil
			}
			return nil, err
		}
		p.UpdatedAt = now

		err = store.Save(ctx, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, database.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, database.ErrVersionConflict
}

type PortfolioController struct {
	portfolios PortfolioStore
	artists    ArtistStore
	media      *MediaController
	log        *zap.Logger
	now        func() time.Time
}

func NewPortfolioController(portfolios PortfolioStore, artists ArtistStore, media *MediaController, log *zap.Logger) *PortfolioController {
	return &PortfolioController{portfolios: portfolios, artists: artists, media: media, log: log, now: time.Now}
}

func (pc *PortfolioController) fail(c *gin.Context, tag string, err error) {
	switch {
	case errors.Is(err, errItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, database.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "portfolio was modified concurrently, try again"})
	default:
		storeFailure(c, pc.log, tag, err, "Portfolio not found")
	}
}

func (pc *PortfolioController) GetMyPortfolio() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		p, err := pc.portfolios.Get(ctx, currentArtistID(c))
		if errors.Is(err, database.ErrNotFound) {
			p, err = models.NewPortfolio(currentArtistID(c), pc.now()), nil
		}
		if err != nil {
			pc.fail(c, "[GetMyPortfolio]", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"portfolio": p, "completion": helpers.PortfolioCompletion(p)})
	}
}

// GetPublicPortfolio serves the portfolio of an active artist.
func (pc *PortfolioController) GetPublicPortfolio() gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID := c.Param("artistid")

		ctx, cancel := requestContext(c)
		defer cancel()

		artist, err := pc.artists.FindByArtistID(ctx, artistID)
		if err == nil && artist.IsSuspended() {
			err = database.ErrNotFound
		}
		if err != nil {
			storeFailure(c, pc.log, "[GetPortfolio]", err, "Artist not found")
			return
		}

		p, err := pc.portfolios.Get(ctx, artistID)
		if err != nil {
			pc.fail(c, "[GetPortfolio]", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"portfolio": p, "artist": artist, "completion": helpers.PortfolioCompletion(p)})
	}
}

func (pc *PortfolioController) ListPortfolios() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		artists, err := pc.artists.List(ctx, true)
		if err != nil {
			storeFailure(c, pc.log, "[ListPortfolios]", err, "")
			return
		}
		active := make(map[string]bool, len(artists))
		for _, a := range artists {
			active[a.ArtistID] = true
		}

		portfolios, err := pc.portfolios.List(ctx)
		if err != nil {
			storeFailure(c, pc.log, "[ListPortfolios]", err, "")
			return
		}

		summaries := make([]models.PortfolioSummary, 0, len(portfolios))
		for i := range portfolios {
			p := &portfolios[i]
			if !active[p.ArtistID] {
				continue
			}
			summaries = append(summaries, models.PortfolioSummary{
				ArtistID:      p.ArtistID,
				FullName:      p.BasicDetails.FullName,
				Tagline:       p.BasicDetails.Tagline,
				ProfileImage:  p.BasicDetails.ProfileImage,
				Primary:       p.Specialization.Primary,
				CurrentRating: p.Ratings.CurrentRating,
				TotalReviews:  p.Ratings.TotalReviews,
				Completion:    helpers.PortfolioCompletion(p),
			})
		}
		c.JSON(http.StatusOK, gin.H{"count": len(summaries), "portfolios": summaries})
	}
}

func (pc *PortfolioController) UpdateBasicDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		var details models.BasicDetails
		if !bindJSON(c, &details) {
			return
		}
		pc.write(c, "[UpdateBasicDetails]", "basic details updated", func(p *models.Portfolio) error {
			p.BasicDetails = details
			return nil
		})
	}
}

func (pc *PortfolioController) UpdateSpecialization() gin.HandlerFunc {
	return func(c *gin.Context) {
		var spec models.Specialization
		if !bindJSON(c, &spec) {
			return
		}
		if spec.Skills == nil {
			spec.Skills = []string{}
		}
		pc.write(c, "[UpdateSpecialization]", "specialization updated", func(p *models.Portfolio) error {
			p.Specialization = spec
			return nil
		})
	}
}

func (pc *PortfolioController) write(c *gin.Context, tag, msg string, fn func(*models.Portfolio) error) {
	ctx, cancel := requestContext(c)
	defer cancel()

	p, err := mutatePortfolio(ctx, pc.portfolios, currentArtistID(c), pc.now(), true, fn)
	if err != nil {
		pc.fail(c, tag, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": msg, "portfolio": p, "completion": helpers.PortfolioCompletion(p)})
}

// section describes one list of id-carrying items inside a portfolio.
type section[T any] struct {
	name  string
	items func(*models.Portfolio) *[]T
	id    func(*T) *string
	// merge copies server-owned fields from the stored item on update.
	merge func(stored, incoming *T)
}

var (
	experienceSection = section[models.Experience]{
		name:  "experience",
		items: func(p *models.Portfolio) *[]models.Experience { return &p.Experience },
		id:    func(e *models.Experience) *string { return &e.ID },
	}
	awardSection = section[models.Award]{
		name:  "award",
		items: func(p *models.Portfolio) *[]models.Award { return &p.Awards },
		id:    func(a *models.Award) *string { return &a.ID },
	}
	projectSection = section[models.Project]{
		name:  "project",
		items: func(p *models.Portfolio) *[]models.Project { return &p.Projects },
		id:    func(pr *models.Project) *string { return &pr.ID },
	}
	artworkSection = section[models.Artwork]{
		name:  "artwork",
		items: func(p *models.Portfolio) *[]models.Artwork { return &p.Artworks },
		id:    func(a *models.Artwork) *string { return &a.ID },
		merge: func(stored, incoming *models.Artwork) {
			// publicId is never taken from the client; it names a
			// counted reference on an uploaded file.
			if incoming.ImageURL == "" || incoming.ImageURL == stored.ImageURL {
				incoming.ImageURL = stored.ImageURL
				incoming.PublicID = stored.PublicID
			} else {
				incoming.PublicID = ""
			}
			incoming.CreatedAt = stored.CreatedAt
		},
	}
)

func addItem[T any](pc *PortfolioController, s section[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item T
		if !bindJSON(c, &item) {
			return
		}
		pc.appendItem(c, s.name, func(p *models.Portfolio) (interface{}, error) {
			*s.id(&item) = uuid.NewString()
			list := s.items(p)
			*list = append(*list, item)
			return item, nil
		})
	}
}

func (pc *PortfolioController) appendItem(c *gin.Context, name string, fn func(*models.Portfolio) (interface{}, error)) {
	ctx, cancel := requestContext(c)
	defer cancel()

	var added interface{}
	p, err := mutatePortfolio(ctx, pc.portfolios, currentArtistID(c), pc.now(), true, func(p *models.Portfolio) error {
		var err error
		added, err = fn(p)
		return err
	})
	if err != nil {
		pc.fail(c, "[Add "+name+"]", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": name + " added", "item": added, "completion": helpers.PortfolioCompletion(p)})
}

func updateItem[T any](pc *PortfolioController, s section[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var incoming T
		if !bindJSON(c, &incoming) {
			return
		}
		itemID := c.Param("itemId")
		*s.id(&incoming) = itemID

		ctx, cancel := requestContext(c)
		defer cancel()

		p, err := mutatePortfolio(ctx, pc.portfolios, currentArtistID(c), pc.now(), false, func(p *models.Portfolio) error {
			list := *s.items(p)
			for i := range list {
				if *s.id(&list[i]) != itemID {
					continue
				}
				if s.merge != nil {
					s.merge(&list[i], &incoming)
				}
				list[i] = incoming
				return nil
			}
			return errItemNotFound
		})
		if err != nil {
			pc.fail(c, "[Update "+s.name+"]", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": s.name + " updated", "item": incoming, "completion": helpers.PortfolioCompletion(p)})
	}
}

// deleteItem removes an item; after runs with the removed item once the
// portfolio is saved.
func deleteItem[T any](pc *PortfolioController, s section[T], after func(context.Context, T)) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("itemId")

		ctx, cancel := requestContext(c)
		defer cancel()

		var removed T
		p, err := mutatePortfolio(ctx, pc.portfolios, currentArtistID(c), pc.now(), false, func(p *models.Portfolio) error {
			list := s.items(p)
			for i := range *list {
				if *s.id(&(*list)[i]) != itemID {
					continue
				}
				removed = (*list)[i]
				out := make([]T, 0, len(*list)-1)
				out = append(out, (*list)[:i]...)
				*list = append(out, (*list)[i+1:]...)
				return nil
			}
			return errItemNotFound
		})
		if err != nil {
			pc.fail(c, "[Delete "+s.name+"]", err)
			return
		}
		if after != nil {
			after(ctx, removed)
		}
		c.JSON(http.StatusOK, gin.H{"msg": s.name + " deleted", "completion": helpers.PortfolioCompletion(p)})
	}
}

func (pc *PortfolioController) AddExperience() gin.HandlerFunc {
	return addItem(pc, experienceSection)
}

func (pc *PortfolioController) UpdateExperience() gin.HandlerFunc {
	return updateItem(pc, experienceSection)
}

func (pc *PortfolioController) DeleteExperience() gin.HandlerFunc {
	return deleteItem(pc, experienceSection, nil)
}

func (pc *PortfolioController) AddAward() gin.HandlerFunc {
	return addItem(pc, awardSection)
}

func (pc *PortfolioController) UpdateAward() gin.HandlerFunc {
	return updateItem(pc, awardSection)
}

func (pc *PortfolioController) DeleteAward() gin.HandlerFunc {
	return deleteItem(pc, awardSection, nil)
}

func (pc *PortfolioController) AddProject() gin.HandlerFunc {
	return addItem(pc, projectSection)
}

func (pc *PortfolioController) UpdateProject() gin.HandlerFunc {
	return updateItem(pc, projectSection)
}

func (pc *PortfolioController) DeleteProject() gin.HandlerFunc {
	return deleteItem(pc, projectSection, nil)
}

// AddArtwork accepts a multipart form with an optional "image" file, or an
// "imageUrl" field pointing at an already hosted image.
func (pc *PortfolioController) AddArtwork() gin.HandlerFunc {
	return func(c *gin.Context) {
		artwork := models.Artwork{
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Category:    c.PostForm("category"),
			Medium:      c.PostForm("medium"),
			Year:        c.PostForm("year"),
			ImageURL:    c.PostForm("imageUrl"),
		}
		if err := validate.Struct(artwork); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		header, err := c.FormFile("image")
		if err == nil {
			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
				return
			}
			defer file.Close()

			asset, _, err := pc.media.store(ctx, file, header, "artworks", currentArtistID(c))
			if err != nil {
				pc.media.uploadFailure(c, "[AddArtwork]", err)
				return
			}
			artwork.ImageURL = asset.URL
			artwork.PublicID = asset.PublicID
		}
		if artwork.ImageURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "an image file or imageUrl is required"})
			return
		}

		pc.appendItem(c, artworkSection.name, func(p *models.Portfolio) (interface{}, error) {
			artwork.ID = uuid.NewString()
			artwork.CreatedAt = pc.now()
			p.Artworks = append(p.Artworks, artwork)
			return artwork, nil
		})
		if c.Writer.Status() >= http.StatusBadRequest {
			pc.media.release(ctx, artwork.PublicID)
		}
	}
}

func (pc *PortfolioController) UpdateArtwork() gin.HandlerFunc {
	return updateItem(pc, artworkSection)
}

// DeleteArtwork also releases the stored image.
func (pc *PortfolioController) DeleteArtwork() gin.HandlerFunc {
	return deleteItem(pc, artworkSection, func(ctx context.Context, a models.Artwork) {
		pc.media.release(ctx, a.PublicID)
	})
}
