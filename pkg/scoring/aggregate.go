package scoring

import (
	"fmt"
	"math"
)

// Aggregate folds the capped (technology, repository) scores for one
// technology into a single final score: the authorship-fraction-weighted
// average of capped scores. Repositories where the technology was not
// detected contribute a zero score at their full authorship weight, pulling
// the average down. Rounded to one decimal.
func Aggregate(technology string, perRepo []RepoSkillScore) (*AggregatedSkillScore, error) {
	agg := &AggregatedSkillScore{
		Technology:    technology,
		PerRepository: perRepo,
	}

	if len(perRepo) == 0 {
		agg.Reason = "no repositories analyzed"
		return agg, nil
	}

	var weightedSum, totalWeight float64
	for _, rs := range perRepo {
		if rs.Technology != technology {
			return nil, fmt.Errorf("aggregate %s: repo score for %s in input", technology, rs.Technology)
		}
		if err := Validate(rs.Capped.Score, 0, MaxSubScore, "capped score for "+rs.RepoID); err != nil {
			return nil, err
		}

		weightedSum += rs.Capped.Score * rs.Authorship
		totalWeight += rs.Authorship

		if rs.Detected {
			agg.Verified = true
			agg.ReposUsed++
		}
		if rs.Capped.Score == 0 && rs.SubScore > 0 {
			agg.ReposInsufficient++
		}
		for _, entry := range rs.Trail {
			agg.Evidence = append(agg.Evidence, fmt.Sprintf("[%s] %s", rs.RepoID, entry))
		}
	}

	if totalWeight == 0 {
		// Contributor had zero authorship everywhere: defined as 0, not NaN.
		agg.Score = 0
		agg.Reason = "no authorship weight in any repository"
		return agg, nil
	}

	agg.Score = roundScore(weightedSum / totalWeight)
	if err := Validate(agg.Score, 0, MaxSubScore, technology+" aggregated score"); err != nil {
		return nil, err
	}
	agg.Reason = fmt.Sprintf("weighted average over %d repository(ies)", len(perRepo))
	return agg, nil
}

// roundScore rounds to one decimal place, the display convention for final
// scores.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
