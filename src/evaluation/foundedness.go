package evaluation

import (
	"github.com/trustwire/sourcecheck/src/evidence"
)

// Foundedness scores how well an evaluation's claims are grounded in the
// evidence pack the model was given:
//
//	2 x (citations whose evidenceId matches a pack item)
//	+ 1 x (unique matched IDs)
//	+ 0.25 x (cited items carrying a recency field)
//	+ min(2, independentAssessmentsCount / 5)
func Foundedness(r Result, pack *evidence.Pack) float64 {
	matched := 0
	withRecency := 0
	unique := map[string]bool{}

	for _, c := range r.EvidenceCited {
		if c.Recency != "" {
			withRecency++
		}
		if c.EvidenceID == "" || pack == nil {
			continue
		}
		if _, ok := pack.ItemByID(c.EvidenceID); ok {
			matched++
			unique[c.EvidenceID] = true
		}
	}

	assessments := 0.0
	if r.EvidenceQuality != nil {
		assessments = float64(r.EvidenceQuality.IndependentAssessmentsCount) / 5
		if assessments > 2 {
			assessments = 2
		}
	}

	return 2*float64(matched) + float64(len(unique)) + 0.25*float64(withRecency) + assessments
}

// UniqueCitationCount counts distinct pack item IDs the result cites.
func UniqueCitationCount(r Result, pack *evidence.Pack) int {
	unique := map[string]bool{}
	for _, c := range r.EvidenceCited {
		if c.EvidenceID == "" || pack == nil {
			continue
		}
		if _, ok := pack.ItemByID(c.EvidenceID); ok {
			unique[c.EvidenceID] = true
		}
	}
	return len(unique)
}
