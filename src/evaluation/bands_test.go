package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreToRating_BandConsistency(t *testing.T) {
	bands := []struct {
		lo, hi float64
		rating string
	}{
		{0.86, 1.00, RatingHighlyReliable},
		{0.72, 0.859, RatingReliable},
		{0.58, 0.719, RatingLeaningReliable},
		{0.43, 0.579, RatingMixed},
		{0.29, 0.429, RatingLeaningUnreliable},
		{0.15, 0.289, RatingUnreliable},
		{0.00, 0.149, RatingHighlyUnreliable},
	}

	for _, band := range bands {
		// Sample the boundaries and the midpoint of every band.
		for _, score := range []float64{band.lo, (band.lo + band.hi) / 2, band.hi} {
			assert.Equal(t, band.rating, ScoreToRating(score), "score %.3f", score)
		}
	}
}

func TestNormalizeRating_Aliases(t *testing.T) {
	assert.Equal(t, RatingLeaningReliable, NormalizeRating("generally_reliable"))
	assert.Equal(t, RatingLeaningUnreliable, NormalizeRating("generally_unreliable"))
	assert.Equal(t, RatingMixed, NormalizeRating(RatingMixed))
	assert.Equal(t, "garbage", NormalizeRating("garbage"))
}

func TestMinConfidenceForRating_Asymmetry(t *testing.T) {
	// Higher bands must require at least as much confidence as lower ones.
	order := []string{
		RatingHighlyUnreliable, RatingUnreliable, RatingLeaningUnreliable,
		RatingMixed, RatingLeaningReliable, RatingReliable, RatingHighlyReliable,
	}
	prev := 0.0
	for _, rating := range order {
		req := MinConfidenceForRating(rating)
		assert.GreaterOrEqual(t, req, prev, "rating %s", rating)
		prev = req
	}

	assert.Zero(t, MinConfidenceForRating(RatingInsufficientData))
}
