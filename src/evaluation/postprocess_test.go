package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcess_NullScoreForcesInsufficientData(t *testing.T) {
	r := Result{Score: nil, FactualRating: RatingMixed, Confidence: 0.5}
	out := PostProcess(r, testPack())

	assert.Nil(t, out.Score)
	assert.Equal(t, RatingInsufficientData, out.FactualRating)
	// Remaining steps are skipped: no grounding caveats on a null score.
	assert.Empty(t, out.Caveats)
}

func TestPostProcess_PropagandaCap(t *testing.T) {
	r := Result{
		Score:         floatPtr(0.80),
		Confidence:    0.9,
		SourceType:    SourceTypePropagandaOutlet,
		FactualRating: RatingReliable,
	}
	out := PostProcess(r, testPack())

	require.NotNil(t, out.Score)
	assert.Equal(t, 0.14, *out.Score)
	assert.Equal(t, RatingHighlyUnreliable, out.FactualRating)
	require.NotNil(t, out.ScoreBeforeCap)
	assert.Equal(t, 0.80, *out.ScoreBeforeCap)

	var capped bool
	for _, c := range out.Caveats {
		if strings.Contains(c, SourceTypePropagandaOutlet) && strings.Contains(c, "0.80") && strings.Contains(c, "0.14") {
			capped = true
		}
	}
	assert.True(t, capped, "caveat must name the source type and both values: %v", out.Caveats)
}

func TestPostProcess_CapNotAppliedUnderCeiling(t *testing.T) {
	r := Result{
		Score:         floatPtr(0.40),
		Confidence:    0.9,
		SourceType:    SourceTypeStateControlledMedia,
		FactualRating: RatingLeaningUnreliable,
	}
	out := PostProcess(r, testPack())

	assert.Equal(t, 0.40, *out.Score)
	assert.Nil(t, out.ScoreBeforeCap)
}

func TestPostProcess_RatingRealignment(t *testing.T) {
	r := Result{
		Score:         floatPtr(0.90),
		Confidence:    0.9,
		SourceType:    SourceTypeNewsOrganization,
		FactualRating: RatingMixed, // contradicts the score
	}
	out := PostProcess(r, testPack())

	assert.Equal(t, RatingHighlyReliable, out.FactualRating)
}

func TestPostProcess_WeakGroundingCaveat(t *testing.T) {
	r := Result{
		Score:         floatPtr(0.85),
		Confidence:    0.9,
		SourceType:    SourceTypeNewsOrganization,
		FactualRating: RatingReliable,
	}
	out := PostProcess(r, testPack("E1"))

	var weak, uncited bool
	for _, c := range out.Caveats {
		if strings.Contains(c, "weak evidence grounding") {
			weak = true
		}
		if strings.Contains(c, "Insufficient evidence citations") {
			uncited = true
		}
	}
	assert.True(t, weak)
	assert.True(t, uncited)
}

func TestPostProcess_WellGroundedHighScoreHasNoCaveats(t *testing.T) {
	r := Result{
		Score:         floatPtr(0.85),
		Confidence:    0.9,
		SourceType:    SourceTypeNewsOrganization,
		FactualRating: RatingReliable,
		EvidenceCited: []CitedEvidence{
			{Claim: "a", EvidenceID: "E1", Recency: "2025"},
			{Claim: "b", EvidenceID: "E2"},
		},
	}
	out := PostProcess(r, testPack("E1", "E2"))

	assert.Empty(t, out.Caveats)
}

func TestPostProcess_ScoreIsAFixedPoint(t *testing.T) {
	r := Result{
		Score:         floatPtr(0.80),
		Confidence:    0.9,
		SourceType:    SourceTypePlatformUGC,
		FactualRating: RatingReliable,
	}
	once := PostProcess(r, testPack())
	twice := PostProcess(once, testPack())

	assert.Equal(t, *once.Score, *twice.Score)
	assert.Equal(t, once.FactualRating, twice.FactualRating)
}

func TestPostProcess_DoesNotMutateInput(t *testing.T) {
	score := 0.80
	r := Result{
		Score:         &score,
		Confidence:    0.9,
		SourceType:    SourceTypePropagandaOutlet,
		FactualRating: RatingReliable,
	}
	_ = PostProcess(r, testPack())

	assert.Equal(t, 0.80, score)
	assert.Empty(t, r.Caveats)
}
