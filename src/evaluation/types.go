package evaluation

import (
	"github.com/trustwire/sourcecheck/src/evidence"
)

// Source type classifications a model may assign. The capped types carry a
// hard score ceiling that holds regardless of what the model says.
const (
	SourceTypeNewsOrganization     = "news_organization"
	SourceTypeGovernment           = "government"
	SourceTypeAcademic             = "academic"
	SourceTypeAdvocacy             = "advocacy"
	SourceTypeCorporate            = "corporate"
	SourceTypeBlog                 = "blog"
	SourceTypeSatire               = "satire"
	SourceTypeAggregator           = "aggregator"
	SourceTypePlatformUGC          = "platform_ugc"
	SourceTypeStateControlledMedia = "state_controlled_media"
	SourceTypePropagandaOutlet     = "propaganda_outlet"
	SourceTypeKnownDisinformation  = "known_disinformation"
	SourceTypeUnknown              = "unknown"
)

var sourceTypeCaps = map[string]float64{
	SourceTypePropagandaOutlet:     0.14,
	SourceTypeKnownDisinformation:  0.14,
	SourceTypeStateControlledMedia: 0.42,
	SourceTypePlatformUGC:          0.42,
}

// Severe buckets trigger the secondary-disagreement softening in the
// consensus resolver.
var severeSourceTypes = map[string]bool{
	SourceTypePropagandaOutlet:     true,
	SourceTypeKnownDisinformation:  true,
	SourceTypeStateControlledMedia: true,
}

// SourceTypeCap returns the score ceiling for a source type, if one exists.
func SourceTypeCap(sourceType string) (float64, bool) {
	ceiling, ok := sourceTypeCaps[sourceType]
	return ceiling, ok
}

// Bias carries the model's bias assessment.
type Bias struct {
	PoliticalBias string `json:"politicalBias" validate:"required"`
	OtherBias     string `json:"otherBias,omitempty"`
}

// CitedEvidence is one claim the model made, tied back to a pack item by ID.
type CitedEvidence struct {
	Claim      string `json:"claim"`
	Basis      string `json:"basis"`
	Recency    string `json:"recency,omitempty"`
	EvidenceID string `json:"evidenceId,omitempty"`
}

// EvidenceQuality summarizes how the model judged its own evidence base.
type EvidenceQuality struct {
	IndependentAssessmentsCount int    `json:"independentAssessmentsCount,omitempty"`
	RecencyWindowUsed           string `json:"recencyWindowUsed,omitempty"`
	Notes                       string `json:"notes,omitempty"`
}

// Result is a single model's evaluation after parsing and validation.
// A nil Score means the model judged the evidence insufficient; that state and
// FactualRating == RatingInsufficientData imply each other once PostProcess
// has run.
type Result struct {
	Score            *float64         `json:"score" validate:"omitempty,gte=0,lte=1"`
	Confidence       float64          `json:"confidence" validate:"gte=0,lte=1"`
	SourceType       string           `json:"sourceType"`
	FactualRating    string           `json:"factualRating" validate:"required,oneof=highly_reliable reliable leaning_reliable mixed leaning_unreliable unreliable highly_unreliable insufficient_data"`
	Bias             Bias             `json:"bias"`
	Reasoning        string           `json:"reasoning"`
	EvidenceCited    []CitedEvidence  `json:"evidenceCited,omitempty"`
	Caveats          []string         `json:"caveats,omitempty"`
	IdentifiedEntity string           `json:"identifiedEntity,omitempty"`
	EvidenceQuality  *EvidenceQuality `json:"evidenceQuality,omitempty"`

	// ScoreBeforeCap holds the model's stated score when the source-type cap
	// fired; nil means the score was never capped. The consensus resolver
	// needs the pre-cap value for its softening rule.
	ScoreBeforeCap *float64 `json:"-"`
}

// Outcome is the terminal, externally visible artifact of a resolution.
type Outcome struct {
	Score             *float64         `json:"score"`
	Confidence        float64          `json:"confidence"`
	ModelPrimary      string           `json:"modelPrimary"`
	ModelSecondary    string           `json:"modelSecondary,omitempty"`
	ConsensusAchieved bool             `json:"consensusAchieved"`
	Category          string           `json:"category"`
	SourceType        string           `json:"sourceType,omitempty"`
	Reasoning         string           `json:"reasoning"`
	Bias              Bias             `json:"bias"`
	EvidenceCited     []CitedEvidence  `json:"evidenceCited,omitempty"`
	Caveats           []string         `json:"caveats,omitempty"`
	IdentifiedEntity  string           `json:"identifiedEntity,omitempty"`
	EvidenceQuality   *EvidenceQuality `json:"evidenceQuality,omitempty"`
	FallbackUsed      bool             `json:"fallbackUsed,omitempty"`
	FallbackReason    string           `json:"fallbackReason,omitempty"`
	EvidencePack      *evidence.Pack   `json:"evidencePack"`
}

func floatPtr(v float64) *float64 { return &v }
