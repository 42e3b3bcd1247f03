package evaluation

import (
	"fmt"
	"strings"

	"github.com/trustwire/sourcecheck/src/evidence"
)

// SystemPrompt frames every evaluation call.
const SystemPrompt = `You are a media reliability analyst. You rate information
sources strictly from the evidence you are given, never from memory of the
source's reputation. You always answer with a single JSON object and nothing
else.`

const evaluationTemplate = `Evaluate the reliability of the information source at domain: %s

EVIDENCE PACK
Your only permitted external knowledge is the numbered evidence below. Cite
items by their ID (E1, E2, ...) in evidenceCited.
%s

RATING BANDS (score -> factualRating, authoritative)
0.86-1.00 highly_reliable | 0.72-0.859 reliable | 0.58-0.719 leaning_reliable |
0.43-0.579 mixed | 0.29-0.429 leaning_unreliable | 0.15-0.289 unreliable |
0.00-0.149 highly_unreliable | null -> insufficient_data

SOURCE TYPE CAPS (hard ceilings, applied after your answer regardless)
propaganda_outlet 0.14 | known_disinformation 0.14 |
state_controlled_media 0.42 | platform_ugc 0.42
sourceType must be one of: news_organization, government, academic, advocacy,
corporate, blog, satire, aggregator, platform_ugc, state_controlled_media,
propaganda_outlet, known_disinformation, unknown.

CONFIDENCE
Confidence reflects evidence breadth, not conviction: start from the count of
independent assessments in the pack (5+ distinct assessors supports up to 0.9),
reduce for stale evidence or single-source claims, and never exceed 0.95.

RULES
- If the evidence pack is disabled or empty, return "score": null and
  "factualRating": "insufficient_data".
- Every substantive claim in evidenceCited must carry the evidenceId of the
  pack item supporting it, plus a recency note when the item is dated.
- politicalBias is one of: far_left, left, center_left, center, center_right,
  right, far_right, not_applicable.

Return STRICT JSON (no Markdown) using this schema:
{
  "score": 0.0-1.0 or null,
  "confidence": 0.0-1.0,
  "sourceType": "...",
  "factualRating": "...",
  "bias": {"politicalBias": "...", "otherBias": "optional"},
  "reasoning": "under 200 words",
  "evidenceCited": [
    {"claim": "...", "basis": "...", "recency": "optional", "evidenceId": "E1"}
  ],
  "caveats": ["optional"],
  "identifiedEntity": "optional organization name",
  "evidenceQuality": {
    "independentAssessmentsCount": 0,
    "recencyWindowUsed": "optional",
    "notes": "optional"
  }
}`

// BuildEvaluationPrompt renders the evidence pack and the fixed rubric into
// the request sent to a model.
func BuildEvaluationPrompt(domain string, pack *evidence.Pack) string {
	return fmt.Sprintf(evaluationTemplate, domain, renderPack(pack))
}

func renderPack(pack *evidence.Pack) string {
	if pack == nil || !pack.Enabled || len(pack.Items) == 0 {
		return "(evidence retrieval disabled or returned nothing; you must answer insufficient_data)"
	}

	var b strings.Builder
	for _, item := range pack.Items {
		fmt.Fprintf(&b, "[%s] %s\n", item.ID, item.Title)
		if item.Snippet != "" {
			fmt.Fprintf(&b, "     %s\n", item.Snippet)
		}
		fmt.Fprintf(&b, "     %s (via %s: %q)\n", item.URL, item.Provider, item.Query)
	}
	return strings.TrimRight(b.String(), "\n")
}
