package service

import (
	"fmt"

	"rental-analyzer/domain"
)

// explainRecommendation turns the recommendation and its advantage into a
// short, deterministic explanation string. Thresholds: above 20% the edge is
// strong, 10-20% moderate, below 10% the scenarios are close and
// non-financial factors should weigh in. An inapplicable advantage means the
// losing scenario projects no positive outcome at all.
func explainRecommendation(recommendation string, advantage domain.Ratio) string {
	if !advantage.Applicable {
		if recommendation == domain.RecommendKeep {
			return "Strong case to keep the rental: selling now projects no positive outcome to compare against."
		}
		return "Strong case to sell now: keeping the rental projects no positive outcome to compare against."
	}

	advantagePct := advantage.Value
	if recommendation == domain.RecommendKeep {
		switch {
		case advantagePct > 0.20:
			return fmt.Sprintf("Strong case to keep the rental: %.1f%% higher projected wealth, driven by leverage, depreciation deductions and ongoing cash flow.", advantagePct*100)
		case advantagePct > 0.10:
			return fmt.Sprintf("Moderate case to keep the rental: %.1f%% higher projected wealth, but weigh the management burden and illiquidity.", advantagePct*100)
		default:
			return fmt.Sprintf("Slight edge to keeping the rental (%.1f%%). The outcomes are close; liquidity needs and time commitment may matter more.", advantagePct*100)
		}
	}

	switch {
	case advantagePct > 0.20:
		return fmt.Sprintf("Strong case to sell now: %.1f%% higher projected wealth with better liquidity and no management burden.", advantagePct*100)
	case advantagePct > 0.10:
		return fmt.Sprintf("Moderate case to sell now: %.1f%% higher projected wealth, plus immediate liquidity.", advantagePct*100)
	default:
		return fmt.Sprintf("Slight edge to selling now (%.1f%%). The outcomes are close; simplicity and liquidity may tip the scales.", advantagePct*100)
	}
}
