package models

import "strings"

// Tier is the board's employer grouping.
type Tier string

const (
	TierFAANG      Tier = "FAANG+"
	TierTopTech    Tier = "Top Tech"
	TierConsulting Tier = "Consulting"
	TierOther      Tier = "Other"
)

// Rank orders tiers as they appear on the board, FAANG+ first.
func (t Tier) Rank() int {
	switch t {
	case TierFAANG:
		return 0
	case TierTopTech:
		return 1
	case TierConsulting:
		return 2
	}
	return 3
}

var faangCompanies = map[string]bool{
	"meta":      true,
	"facebook":  true,
	"apple":     true,
	"amazon":    true,
	"netflix":   true,
	"google":    true,
	"alphabet":  true,
	"microsoft": true,
	"nvidia":    true,
}

var topTechCompanies = map[string]bool{
	"airbnb":     true,
	"uber":       true,
	"lyft":       true,
	"stripe":     true,
	"databricks": true,
	"snowflake":  true,
	"salesforce": true,
	"adobe":      true,
	"linkedin":   true,
	"pinterest":  true,
	"doordash":   true,
	"dropbox":    true,
	"palantir":   true,
	"spotify":    true,
	"square":     true,
	"block":      true,
	"coinbase":   true,
	"robinhood":  true,
	"roblox":     true,
	"snap":       true,
	"tiktok":     true,
	"bytedance":  true,
	"openai":     true,
	"anthropic":  true,
}

var consultingCompanies = map[string]bool{
	"mckinsey":                true,
	"mckinsey & company":      true,
	"bain":                    true,
	"bain & company":          true,
	"boston consulting group": true,
	"bcg":                     true,
	"deloitte":                true,
	"accenture":               true,
	"pwc":                     true,
	"ey":                      true,
	"kpmg":                    true,
	"capgemini":               true,
	"booz allen hamilton":     true,
}

// ClassifyTier maps an employer name onto its board tier. Matching is done
// on the normalized name; suffixes like "Inc." are stripped first.
func ClassifyTier(company string) Tier {
	name := Normalize(company)
	for _, suffix := range []string{", inc.", ", inc", " inc.", " inc", " llc", " ltd", " corp.", " corp", " corporation"} {
		name = strings.TrimSuffix(name, suffix)
	}

	switch {
	case faangCompanies[name]:
		return TierFAANG
	case topTechCompanies[name]:
		return TierTopTech
	case consultingCompanies[name]:
		return TierConsulting
	}
	return TierOther
}
