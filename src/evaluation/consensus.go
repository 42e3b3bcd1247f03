package evaluation

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/trustwire/sourcecheck/src/ai/core"
	"github.com/trustwire/sourcecheck/src/evidence"
	"github.com/trustwire/sourcecheck/src/logging"
)

const (
	// consensusBoost is added to the averaged confidence when both models agree.
	consensusBoost = 0.15
	// maxConfidence is the ceiling for any reported confidence.
	maxConfidence = 0.95
	// secondaryAbsencePenalty discounts primary confidence when the secondary
	// evaluator failed or came back insufficient; the absent model is treated
	// as partially trusted, not as a vote against.
	secondaryAbsencePenalty = 0.8
	// reliableLeaningFloor is the score at which the foundedness tie-break
	// averages instead of taking the more skeptical score. The discontinuity
	// at exactly this value is intentional.
	reliableLeaningFloor = 0.58
	// DefaultMixedBandCeiling caps a softened secondary score during
	// severe-type disagreement.
	DefaultMixedBandCeiling = 0.57
)

// Provider pairs an external model name with its client. A nil client means
// construction failed (bad key, unknown provider) and evaluates as a provider
// failure.
type Provider struct {
	Name   string
	Client core.Client
}

// Request are the per-call knobs of a resolution.
type Request struct {
	Domain              string
	MultiModel          bool
	ConfidenceThreshold float64
	ConsensusThreshold  float64
}

// Resolver runs the primary and optionally secondary evaluators over a shared
// evidence pack and reconciles their results into one Outcome.
type Resolver struct {
	builder          *evidence.Builder
	evaluator        *Evaluator
	primary          Provider
	secondary        Provider
	mixedBandCeiling float64
}

func NewResolver(builder *evidence.Builder, evaluator *Evaluator, primary, secondary Provider, mixedBandCeiling float64) *Resolver {
	if mixedBandCeiling <= 0 {
		mixedBandCeiling = DefaultMixedBandCeiling
	}
	return &Resolver{
		builder:          builder,
		evaluator:        evaluator,
		primary:          primary,
		secondary:        secondary,
		mixedBandCeiling: mixedBandCeiling,
	}
}

// Resolve implements the consensus decision flow. Every branch is terminal:
// primary failure is an error; an insufficient primary or single-model mode
// short-circuits before the secondary call; otherwise the two results are
// reconciled, confidence-gated, and returned.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Outcome, error) {
	pack := r.builder.Build(ctx, req.Domain)

	primary, err := r.evaluator.Evaluate(ctx, req.Domain, r.primary.Client, pack)
	if err != nil {
		log.Printf("consensus: primary %s failed for %s: %v", r.primary.Name, req.Domain, err)
		return nil, &ResolveError{
			Reason:  ReasonPrimaryModelFailed,
			Details: fmt.Sprintf("primary model %s did not return a usable evaluation", r.primary.Name),
			Err:     err,
		}
	}

	if primary.Score == nil {
		out := r.outcomeFrom(*primary, pack, 0, primary.Confidence)
		out.Category = RatingInsufficientData
		out.ConsensusAchieved = true
		return out, nil
	}

	if !req.MultiModel {
		out := r.finalize(*primary, pack, *primary.Score, primary.Confidence)
		out.ConsensusAchieved = true
		r.gate(out, req)
		return out, nil
	}

	secondary, err := r.evaluator.Evaluate(ctx, req.Domain, r.secondary.Client, pack)
	if err != nil || secondary.Score == nil {
		if err != nil {
			log.Printf("consensus: secondary %s failed for %s: %v", r.secondary.Name, req.Domain, err)
		}
		out := r.finalize(*primary, pack, *primary.Score, primary.Confidence*secondaryAbsencePenalty)
		out.ModelSecondary = r.secondary.Name
		out.ConsensusAchieved = false
		r.gate(out, req)
		return out, nil
	}

	sec := r.softenSevereDisagreement(*primary, *secondary)

	scoreDiff := math.Abs(*primary.Score - *sec.Score)
	if scoreDiff > req.ConsensusThreshold {
		return r.fallback(req, pack, *primary, sec, scoreDiff)
	}
	return r.consensus(req, pack, *primary, sec)
}

// softenSevereDisagreement handles the secondary classifying the source into
// a severe bucket that primary does not: the secondary's type is rewritten to
// primary's and, when its stated score already sat at or under its own type
// cap, its score is clamped to min(primaryScore, mixedBandCeiling).
func (r *Resolver) softenSevereDisagreement(primary, secondary Result) Result {
	if !severeSourceTypes[secondary.SourceType] || severeSourceTypes[primary.SourceType] {
		return secondary
	}

	out := secondary
	originalType := out.SourceType
	originalScore := *out.Score
	if out.ScoreBeforeCap != nil {
		originalScore = *out.ScoreBeforeCap
	}

	out.SourceType = primary.SourceType
	out.Caveats = append(append([]string{}, out.Caveats...), fmt.Sprintf(
		"Secondary model classified source as %s but primary (%s) disagreed; classification softened",
		originalType, primary.SourceType))

	if ceiling, ok := SourceTypeCap(originalType); ok && originalScore <= ceiling {
		clamp := math.Min(*primary.Score, r.mixedBandCeiling)
		if *out.Score > clamp {
			adjusted := clamp
			out.Score = &adjusted
		}
	}
	return out
}

// fallback resolves disagreement by keeping whichever model is more
// confident, ties favoring primary. The chosen confidence is passed through
// unmodified.
func (r *Resolver) fallback(req Request, pack *evidence.Pack, primary, secondary Result, scoreDiff float64) (*Outcome, error) {
	winner := primary
	chosen := r.primary.Name
	if secondary.Confidence > primary.Confidence {
		winner = secondary
		chosen = r.secondary.Name
	}
	if winner.Score == nil {
		return nil, r.invariantViolation(req, primary, secondary, "fallback winner has null score")
	}

	out := r.finalize(winner, pack, *winner.Score, winner.Confidence)
	out.ModelSecondary = r.secondary.Name
	out.ConsensusAchieved = false
	out.FallbackUsed = true
	out.FallbackReason = fmt.Sprintf(
		"score divergence %.2f exceeded consensus threshold %.2f: primary %s %.2f (confidence %.2f) vs secondary %s %.2f (confidence %.2f); kept %s",
		scoreDiff, req.ConsensusThreshold,
		r.primary.Name, *primary.Score, primary.Confidence,
		r.secondary.Name, *secondary.Score, secondary.Confidence,
		chosen)
	r.gate(out, req)
	return out, nil
}

// consensus reconciles two agreeing results: the more-founded one wins; on a
// foundedness tie the scores are averaged when both lean reliable, otherwise
// the more skeptical score is kept. Agreement earns a confidence boost.
func (r *Resolver) consensus(req Request, pack *evidence.Pack, primary, secondary Result) (*Outcome, error) {
	if primary.Score == nil || secondary.Score == nil {
		return nil, r.invariantViolation(req, primary, secondary, "consensus input has null score")
	}

	primaryFounded := Foundedness(primary, pack)
	secondaryFounded := Foundedness(secondary, pack)

	winner := primary
	finalScore := *primary.Score
	switch {
	case primaryFounded > secondaryFounded:
		winner, finalScore = primary, *primary.Score
	case secondaryFounded > primaryFounded:
		winner, finalScore = secondary, *secondary.Score
	default:
		if *primary.Score >= reliableLeaningFloor && *secondary.Score >= reliableLeaningFloor {
			finalScore = (*primary.Score + *secondary.Score) / 2
		} else if *secondary.Score < *primary.Score {
			winner, finalScore = secondary, *secondary.Score
		}
	}

	finalConfidence := math.Min(maxConfidence, (primary.Confidence+secondary.Confidence)/2+consensusBoost)

	out := r.finalize(winner, pack, finalScore, finalConfidence)
	out.ModelSecondary = r.secondary.Name
	out.ConsensusAchieved = true
	r.gate(out, req)
	return out, nil
}

// finalize builds the outcome around the winning narrative, recomputing the
// rating band from the final score.
func (r *Resolver) finalize(winner Result, pack *evidence.Pack, finalScore, finalConfidence float64) *Outcome {
	out := r.outcomeFrom(winner, pack, finalScore, finalConfidence)
	out.Category = ScoreToRating(finalScore)
	return out
}

func (r *Resolver) outcomeFrom(winner Result, pack *evidence.Pack, finalScore, finalConfidence float64) *Outcome {
	var score *float64
	if winner.Score != nil {
		s := finalScore
		score = &s
	}
	return &Outcome{
		Score:            score,
		Confidence:       finalConfidence,
		ModelPrimary:     r.primary.Name,
		SourceType:       winner.SourceType,
		Reasoning:        winner.Reasoning,
		Bias:             winner.Bias,
		EvidenceCited:    winner.EvidenceCited,
		Caveats:          append([]string{}, winner.Caveats...),
		IdentifiedEntity: winner.IdentifiedEntity,
		EvidenceQuality:  winner.EvidenceQuality,
		EvidencePack:     pack,
	}
}

// gate applies the asymmetric confidence requirements, then the legacy coarse
// threshold, each downgrading to insufficient_data while preserving the
// winning narrative.
func (r *Resolver) gate(out *Outcome, req Request) {
	if out.Score == nil {
		return
	}

	if required := MinConfidenceForRating(out.Category); out.Confidence < required {
		out.Caveats = append(out.Caveats, fmt.Sprintf(
			"Confidence %.2f below the %.2f required for %s; downgraded to insufficient_data",
			out.Confidence, required, out.Category))
		out.Score = nil
		out.Category = RatingInsufficientData
		return
	}

	if req.ConfidenceThreshold > 0 && out.Confidence < req.ConfidenceThreshold {
		out.Caveats = append(out.Caveats, fmt.Sprintf(
			"Confidence %.2f below requested threshold %.2f; downgraded to insufficient_data",
			out.Confidence, req.ConfidenceThreshold))
		out.Score = nil
		out.Category = RatingInsufficientData
	}
}

// invariantViolation reports a null score surviving consensus math: a logic
// bug, logged distinctly from provider failures and never retried.
func (r *Resolver) invariantViolation(req Request, primary, secondary Result, detail string) error {
	err := logging.Invariant("%s (domain %s)", detail, req.Domain)
	log.Printf("consensus: %v", err)
	return &ResolveError{
		Reason:              ReasonEvaluationError,
		Details:             detail,
		PrimaryScore:        primary.Score,
		PrimaryConfidence:   floatPtr(primary.Confidence),
		SecondaryScore:      secondary.Score,
		SecondaryConfidence: floatPtr(secondary.Confidence),
		Err:                 err,
	}
}
