package helpers

import (
	"testing"

	"github.com/ishanbagra18/artfolio-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviews(ratings ...int) []models.Review {
	out := make([]models.Review, 0, len(ratings))
	for i, r := range ratings {
		out = append(out, models.Review{ID: string(rune('a' + i)), Rating: r})
	}
	return out
}

func percentSum(r models.Ratings) int {
	sum := 0
	for _, b := range r.RatingBreakdown {
		sum += b.Percentage
	}
	return sum
}

func TestRecomputeRatings_Empty(t *testing.T) {
	r := RecomputeRatings(nil)
	assert.Equal(t, 0, r.TotalReviews)
	assert.Equal(t, 0.0, r.CurrentRating)
	require.Len(t, r.RatingBreakdown, 5)
	for _, b := range r.RatingBreakdown {
		assert.Zero(t, b.Count)
		assert.Zero(t, b.Percentage)
	}
	assert.NotNil(t, r.Reviews)
}

func TestRecomputeRatings_MeanAndOrder(t *testing.T) {
	r := RecomputeRatings(reviews(5, 4, 4, 3))
	assert.Equal(t, 4, r.TotalReviews)
	assert.Equal(t, 4.0, r.CurrentRating)
	assert.Equal(t, 5, r.RatingBreakdown[0].Stars)
	assert.Equal(t, 1, r.RatingBreakdown[4].Stars)
	assert.Equal(t, 25, r.RatingBreakdown[0].Percentage)
	assert.Equal(t, 50, r.RatingBreakdown[1].Percentage)
	assert.Equal(t, 25, r.RatingBreakdown[2].Percentage)
	assert.Equal(t, 100, percentSum(r))
}

func TestRecomputeRatings_RoundsToOneDecimal(t *testing.T) {
	r := RecomputeRatings(reviews(5, 4, 4))
	assert.Equal(t, 4.3, r.CurrentRating)
}

func TestRecomputeRatings_PercentagesAlwaysSumTo100(t *testing.T) {
	cases := [][]int{
		{5, 4, 3},
		{5, 5, 4, 3, 2, 1, 1},
		{1},
		{2, 2, 2, 5, 5, 5, 4, 4, 4, 3, 3},
		{5, 4, 3, 2, 1, 5},
	}
	for _, c := range cases {
		r := RecomputeRatings(reviews(c...))
		assert.Equal(t, 100, percentSum(r), "ratings %v", c)
		for _, b := range r.RatingBreakdown {
			if b.Count == 0 {
				assert.Zero(t, b.Percentage, "empty bucket for %v", c)
			}
		}
	}
}

func TestAddReview(t *testing.T) {
	base := RecomputeRatings(reviews(5))
	next := AddReview(base, models.Review{ID: "z", Rating: 4})
	assert.Equal(t, base.TotalReviews+1, next.TotalReviews)
	assert.Equal(t, 4.5, next.CurrentRating)
	assert.Len(t, base.Reviews, 1, "input must not be mutated")
}

func TestRemoveReviewAt(t *testing.T) {
	base := RecomputeRatings(reviews(5, 1, 3))

	next, removed, err := RemoveReviewAt(base, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed.Rating)
	assert.Equal(t, 2, next.TotalReviews)
	assert.Equal(t, 4.0, next.CurrentRating)
	assert.Equal(t, []string{"a", "c"}, []string{next.Reviews[0].ID, next.Reviews[1].ID})
	assert.Equal(t, 100, percentSum(next))

	_, _, err = RemoveReviewAt(base, 3)
	assert.Error(t, err)
	_, _, err = RemoveReviewAt(base, -1)
	assert.Error(t, err)
}

func TestRemoveReviewAt_LastOneZeroesBreakdown(t *testing.T) {
	next, _, err := RemoveReviewAt(RecomputeRatings(reviews(4)), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, next.TotalReviews)
	assert.Equal(t, 0.0, next.CurrentRating)
	assert.Equal(t, 0, percentSum(next))
}

func TestRemoveReviewByID(t *testing.T) {
	base := RecomputeRatings(reviews(5, 3))
	next, ok := RemoveReviewByID(base, "b")
	assert.True(t, ok)
	assert.Equal(t, 5.0, next.CurrentRating)

	_, ok = RemoveReviewByID(base, "missing")
	assert.False(t, ok)
}
