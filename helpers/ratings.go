package helpers

import (
	"fmt"
	"math"
	"sort"

	"github.com/ishanbagra18/artfolio-server/models"
)

// RecomputeRatings derives the summary fields from the review list. The
// breakdown always has five buckets, 5 stars first, and its percentages sum
// to 100 unless there are no reviews.
func RecomputeRatings(reviews []models.Review) models.Ratings {
	if reviews == nil {
		reviews = []models.Review{}
	}

	counts := make(map[int]int, 5)
	sum := 0
	for _, r := range reviews {
		counts[r.Rating]++
		sum += r.Rating
	}

	out := models.Ratings{
		TotalReviews:    len(reviews),
		Reviews:         reviews,
		RatingBreakdown: make([]models.RatingBucket, 0, 5),
	}
	for stars := 5; stars >= 1; stars-- {
		out.RatingBreakdown = append(out.RatingBreakdown, models.RatingBucket{Stars: stars, Count: counts[stars]})
	}
	if len(reviews) == 0 {
		return out
	}

	out.CurrentRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	distributePercentages(out.RatingBreakdown, len(reviews))
	return out
}

// distributePercentages assigns integer percentages by the largest remainder
// method so the buckets add up to exactly 100.
func distributePercentages(buckets []models.RatingBucket, total int) {
	type rem struct {
		idx int
		r   int
	}
	assigned := 0
	rems := make([]rem, 0, len(buckets))
	for i := range buckets {
		scaled := buckets[i].Count * 100
		buckets[i].Percentage = scaled / total
		assigned += buckets[i].Percentage
		rems = append(rems, rem{idx: i, r: scaled % total})
	}

	sort.SliceStable(rems, func(a, b int) bool { return rems[a].r > rems[b].r })
	for i := 0; assigned < 100 && i < len(rems); i++ {
		buckets[rems[i].idx].Percentage++
		assigned++
	}
}

// AddReview appends a review and recomputes the summary.
func AddReview(r models.Ratings, review models.Review) models.Ratings {
	reviews := make([]models.Review, 0, len(r.Reviews)+1)
	reviews = append(reviews, r.Reviews...)
	reviews = append(reviews, review)
	return RecomputeRatings(reviews)
}

// RemoveReviewAt drops the review at index i.
func RemoveReviewAt(r models.Ratings, i int) (models.Ratings, models.Review, error) {
	if i < 0 || i >= len(r.Reviews) {
		return r, models.Review{}, fmt.Errorf("review index %d out of range [0,%d)", i, len(r.Reviews))
	}
	removed := r.Reviews[i]
	reviews := make([]models.Review, 0, len(r.Reviews)-1)
	reviews = append(reviews, r.Reviews[:i]...)
	reviews = append(reviews, r.Reviews[i+1:]...)
	return RecomputeRatings(reviews), removed, nil
}

// RemoveReviewByID drops the review with the given id, reporting whether it
// was present.
func RemoveReviewByID(r models.Ratings, id string) (models.Ratings, bool) {
	for i, rev := range r.Reviews {
		if rev.ID == id {
			out, _, _ := RemoveReviewAt(r, i)
			return out, true
		}
	}
	return r, false
}
