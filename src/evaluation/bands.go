package evaluation

// Factual rating bands. The score boundaries are authoritative: whatever
// rating a model states gets recomputed from its score.
const (
	RatingHighlyReliable    = "highly_reliable"
	RatingReliable          = "reliable"
	RatingLeaningReliable   = "leaning_reliable"
	RatingMixed             = "mixed"
	RatingLeaningUnreliable = "leaning_unreliable"
	RatingUnreliable        = "unreliable"
	RatingHighlyUnreliable  = "highly_unreliable"
	RatingInsufficientData  = "insufficient_data"
)

// ScoreToRating maps a score in [0,1] onto its factual rating band.
func ScoreToRating(score float64) string {
	switch {
	case score >= 0.86:
		return RatingHighlyReliable
	case score >= 0.72:
		return RatingReliable
	case score >= 0.58:
		return RatingLeaningReliable
	case score >= 0.43:
		return RatingMixed
	case score >= 0.29:
		return RatingLeaningUnreliable
	case score >= 0.15:
		return RatingUnreliable
	default:
		return RatingHighlyUnreliable
	}
}

// ratingAliases maps legacy rating names emitted by older rubric revisions
// onto the current bands.
var ratingAliases = map[string]string{
	"generally_reliable":   RatingLeaningReliable,
	"generally_unreliable": RatingLeaningUnreliable,
}

// NormalizeRating resolves legacy aliases; unknown values pass through for
// the validator to reject.
func NormalizeRating(rating string) string {
	if canonical, ok := ratingAliases[rating]; ok {
		return canonical
	}
	return rating
}

// minConfidenceByRating is the asymmetric confidence gate: the higher the
// claimed band, the more confidence a result needs before it is trusted.
var minConfidenceByRating = map[string]float64{
	RatingHighlyReliable:    0.85,
	RatingReliable:          0.80,
	RatingLeaningReliable:   0.65,
	RatingMixed:             0.55,
	RatingLeaningUnreliable: 0.50,
	RatingUnreliable:        0.45,
	RatingHighlyUnreliable:  0.40,
}

// MinConfidenceForRating returns the gate requirement for a band. Unknown
// bands (including insufficient_data) require nothing.
func MinConfidenceForRating(rating string) float64 {
	return minConfidenceByRating[rating]
}
