package strategist

import (
	"strings"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// frameworkCatalog is the static catalog of MECE decomposition schemes.
// Categories are fixed per framework; the CUSTOM scheme is the generic
// fallback when no named framework matches the analysis.
var frameworkCatalog = map[models.FrameworkName]models.Framework{
	models.Framework3C: {
		Name:        models.Framework3C,
		Description: "Customer, Competitor, Company analysis for market-entry decisions",
		Categories:  []string{"Customer", "Competitor", "Company"},
	},
	models.FrameworkSWOT: {
		Name:        models.FrameworkSWOT,
		Description: "Strengths, Weaknesses, Opportunities, Threats",
		Categories:  []string{"Strengths", "Weaknesses", "Opportunities", "Threats"},
	},
	models.FrameworkBCG: {
		Name:        models.FrameworkBCG,
		Description: "Growth-share portfolio matrix",
		Categories:  []string{"Stars", "Cash Cows", "Question Marks", "Dogs"},
	},
	models.FrameworkCustom: {
		Name:        models.FrameworkCustom,
		Description: "Generic current-state decomposition",
		Categories:  []string{"Current State", "Challenges", "Opportunities"},
	},
}

// SelectFramework is the deterministic rule engine choosing the MECE
// framework from the analysis classification tags. No LLM call; given the
// same Analysis it always returns the same framework.
func SelectFramework(analysis *models.Analysis) models.Framework {
	text := strings.ToLower(analysis.Context + " " + analysis.Purpose)

	switch {
	case containsAny(text, "market entry", "go-to-market", "launch"):
		return frameworkCatalog[models.Framework3C]
	case strings.Contains(text, "swot"):
		return frameworkCatalog[models.FrameworkSWOT]
	case containsAny(text, "matrix", "bcg"):
		return frameworkCatalog[models.FrameworkBCG]
	default:
		return frameworkCatalog[models.FrameworkCustom]
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
