package evaluation

import (
	"fmt"

	"github.com/trustwire/sourcecheck/src/evidence"
)

const (
	// minFoundedness is the grounding floor for reliable-band scores.
	minFoundedness = 3.0
	// minCitations is the minimum distinct evidence IDs a result should cite.
	minCitations = 1
	// highScoreFloor marks where the weak-grounding caveat starts applying.
	highScoreFloor = 0.72
)

// PostProcess applies the deterministic business rules to a parsed model
// result and returns a new value; the input is not mutated. Applied in order:
// null-score normalization, source-type cap, rating realignment, grounding
// caveats. Cap enforcement and realignment are fixed points, so running this
// twice never changes the score again.
func PostProcess(r Result, pack *evidence.Pack) Result {
	out := r
	out.Caveats = append([]string{}, r.Caveats...)

	if out.Score == nil {
		out.FactualRating = RatingInsufficientData
		return out
	}
	score := *out.Score
	out.Score = &score

	if ceiling, ok := SourceTypeCap(out.SourceType); ok && *out.Score > ceiling {
		original := *out.Score
		out.ScoreBeforeCap = floatPtr(original)
		*out.Score = ceiling
		out.Caveats = append(out.Caveats, fmt.Sprintf(
			"Score capped at %.2f for source type %s (model scored %.2f)",
			ceiling, out.SourceType, original))
	}

	if band := ScoreToRating(*out.Score); band != out.FactualRating {
		out.FactualRating = band
	}

	founded := Foundedness(out, pack)
	if *out.Score >= highScoreFloor && founded < minFoundedness {
		out.Caveats = append(out.Caveats, fmt.Sprintf(
			"High score with weak evidence grounding (foundedness %.2f, minimum %.2f)",
			founded, minFoundedness))
	}
	if UniqueCitationCount(out, pack) < minCitations {
		out.Caveats = append(out.Caveats,
			"Insufficient evidence citations: result references no items from the evidence pack")
	}

	return out
}
