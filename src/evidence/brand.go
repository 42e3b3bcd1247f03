package evidence

import (
	"strings"
	"unicode"
)

// Registry-style labels that never identify the outlet itself.
var genericLabels = map[string]bool{
	"com": true, "org": true, "net": true, "gov": true,
	"edu": true, "ac": true, "co": true, "www": true,
}

var variantStopwords = map[string]bool{
	"the": true, "and": true, "for": true,
	"www": true, "com": true, "org": true, "net": true,
}

var brandSuffixes = []string{
	"news", "net", "media", "times", "post", "daily", "tribune", "herald",
}

// BrandToken derives the short token that names the outlet behind a domain.
// A short first label on a multi-label domain is taken as an abbreviation
// ("srf.ch" -> "srf"); otherwise labels are walked right-to-left past the
// generic registry labels and the first non-generic one wins.
func BrandToken(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	labels := strings.Split(d, ".")
	if len(labels) >= 2 {
		first := labels[0]
		if n := len(first); n >= 2 && n <= 4 && !genericLabels[first] {
			return first
		}
	}
	for i := len(labels) - 1; i >= 0; i-- {
		if !genericLabels[labels[i]] {
			return labels[i]
		}
	}
	return labels[0]
}

// BrandVariants expands a brand token into the alternates used for relevance
// matching: hyphen recombinations, camel-case splits, and common news-suffix
// strips. Variants shorter than 3 characters or equal to a stopword are
// dropped. Order is deterministic.
func BrandVariants(brand string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(v string) {
		v = strings.ToLower(strings.TrimSpace(v))
		if len(v) < 3 || variantStopwords[v] || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	add(brand)

	if parts := strings.Split(brand, "-"); len(parts) > 1 {
		for _, p := range parts {
			add(p)
		}
		add(strings.Join(parts, ""))
		add(strings.Join(parts, " "))
	}

	if parts := splitCamel(brand); len(parts) > 1 {
		for _, p := range parts {
			add(p)
		}
		add(strings.Join(parts, " "))
	}

	lower := strings.ToLower(brand)
	for _, sfx := range brandSuffixes {
		if strings.HasSuffix(lower, sfx) && len(lower) > len(sfx) {
			add(strings.TrimSuffix(lower, sfx))
		}
	}

	return out
}

func splitCamel(s string) []string {
	var parts []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			parts = append(parts, s[start:i])
			start = i
		}
	}
	parts = append(parts, s[start:])
	return parts
}
