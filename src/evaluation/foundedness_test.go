package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trustwire/sourcecheck/src/evidence"
)

func testPack(ids ...string) *evidence.Pack {
	pack := &evidence.Pack{Enabled: true}
	for _, id := range ids {
		pack.Items = append(pack.Items, evidence.Item{ID: id, URL: "https://example.org/" + id})
	}
	return pack
}

func TestFoundedness_Formula(t *testing.T) {
	pack := testPack("E1", "E2")
	r := Result{
		EvidenceCited: []CitedEvidence{
			{Claim: "a", EvidenceID: "E1", Recency: "2025"},
			{Claim: "b", EvidenceID: "E1"},
			{Claim: "c", EvidenceID: "E2", Recency: "2024"},
			{Claim: "d", EvidenceID: "E9"}, // not in pack
		},
		EvidenceQuality: &EvidenceQuality{IndependentAssessmentsCount: 5},
	}

	// 2*3 matched + 2 unique + 0.25*2 recency + 5/5 assessments
	assert.InDelta(t, 9.5, Foundedness(r, pack), 1e-9)
	assert.Equal(t, 2, UniqueCitationCount(r, pack))
}

func TestFoundedness_AssessmentsContributionIsCapped(t *testing.T) {
	r := Result{EvidenceQuality: &EvidenceQuality{IndependentAssessmentsCount: 100}}
	assert.InDelta(t, 2.0, Foundedness(r, testPack()), 1e-9)
}

func TestFoundedness_NoCitations(t *testing.T) {
	r := Result{}
	assert.Zero(t, Foundedness(r, testPack("E1")))
	assert.Zero(t, UniqueCitationCount(r, testPack("E1")))
}

func TestFoundedness_NilPack(t *testing.T) {
	r := Result{EvidenceCited: []CitedEvidence{{Claim: "a", EvidenceID: "E1", Recency: "2025"}}}
	// Citations cannot match without a pack; only the recency term counts.
	assert.InDelta(t, 0.25, Foundedness(r, nil), 1e-9)
}
