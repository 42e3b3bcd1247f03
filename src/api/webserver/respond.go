package webserver

import (
	"strings"

	"github.com/trustwire/sourcecheck/src/evaluation"
	"github.com/trustwire/sourcecheck/src/evidence"
)

// evaluateResponse is the external success payload.
type evaluateResponse struct {
	Score             *float64                   `json:"score"`
	Confidence        float64                    `json:"confidence"`
	ModelPrimary      string                     `json:"modelPrimary"`
	ModelSecondary    string                     `json:"modelSecondary,omitempty"`
	ConsensusAchieved bool                       `json:"consensusAchieved"`
	Reasoning         string                     `json:"reasoning"`
	Category          string                     `json:"category"`
	SourceType        string                     `json:"sourceType,omitempty"`
	IdentifiedEntity  string                     `json:"identifiedEntity,omitempty"`
	EvidencePack      evidencePackPayload        `json:"evidencePack"`
	BiasIndicator     *string                    `json:"biasIndicator"`
	Bias              *evaluation.Bias           `json:"bias,omitempty"`
	EvidenceCited     []evaluation.CitedEvidence `json:"evidenceCited,omitempty"`
	Caveats           []string                   `json:"caveats,omitempty"`
	FallbackUsed      bool                       `json:"fallbackUsed,omitempty"`
	FallbackReason    string                     `json:"fallbackReason,omitempty"`
}

type evidencePackPayload struct {
	ProvidersUsed []string        `json:"providersUsed"`
	Queries       []string        `json:"queries"`
	Items         []evidence.Item `json:"items"`
}

type failureResponse struct {
	Error               string   `json:"error"`
	Reason              string   `json:"reason"`
	Details             string   `json:"details"`
	PrimaryScore        *float64 `json:"primaryScore,omitempty"`
	PrimaryConfidence   *float64 `json:"primaryConfidence,omitempty"`
	SecondaryScore      *float64 `json:"secondaryScore,omitempty"`
	SecondaryConfidence *float64 `json:"secondaryConfidence,omitempty"`
}

// assembleResponse maps a resolved outcome into the external payload shape.
func assembleResponse(o *evaluation.Outcome) evaluateResponse {
	resp := evaluateResponse{
		Score:             o.Score,
		Confidence:        o.Confidence,
		ModelPrimary:      o.ModelPrimary,
		ModelSecondary:    o.ModelSecondary,
		ConsensusAchieved: o.ConsensusAchieved,
		Reasoning:         o.Reasoning,
		Category:          o.Category,
		SourceType:        o.SourceType,
		IdentifiedEntity:  o.IdentifiedEntity,
		BiasIndicator:     biasIndicator(o.Bias.PoliticalBias),
		EvidenceCited:     o.EvidenceCited,
		Caveats:           o.Caveats,
		FallbackUsed:      o.FallbackUsed,
		FallbackReason:    o.FallbackReason,
	}
	if o.Bias.PoliticalBias != "" || o.Bias.OtherBias != "" {
		bias := o.Bias
		resp.Bias = &bias
	}
	if o.EvidencePack != nil {
		resp.EvidencePack = evidencePackPayload{
			ProvidersUsed: o.EvidencePack.ProvidersUsed,
			Queries:       o.EvidencePack.Queries,
			Items:         o.EvidencePack.Items,
		}
	}
	if resp.EvidencePack.Items == nil {
		resp.EvidencePack.Items = []evidence.Item{}
	}
	return resp
}

// biasIndicator simplifies a politicalBias value for display: hyphenated, or
// nil when not applicable.
func biasIndicator(politicalBias string) *string {
	if politicalBias == "" || politicalBias == "not_applicable" {
		return nil
	}
	v := strings.ReplaceAll(politicalBias, "_", "-")
	return &v
}

func failurePayload(re *evaluation.ResolveError) failureResponse {
	return failureResponse{
		Error:               "evaluation failed",
		Reason:              re.Reason,
		Details:             re.Details,
		PrimaryScore:        re.PrimaryScore,
		PrimaryConfidence:   re.PrimaryConfidence,
		SecondaryScore:      re.SecondaryScore,
		SecondaryConfidence: re.SecondaryConfidence,
	}
}
