package report

import (
	"sort"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
)

// TopN is how many comments the most-offensive ranking keeps
const TopN = 5

// Generate builds the summary report for the annotated comments.
// Ties on severity keep input order.
func Generate(comments []models.Comment) models.Report {
	offensive := FilterOffensive(comments)

	types := make(map[models.OffenseType]int)
	for _, c := range offensive {
		types[c.OffenseType]++
	}

	ranked := make([]models.Comment, len(offensive))
	copy(ranked, offensive)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Severity > ranked[j].Severity
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}

	return models.Report{
		TotalComments:     len(comments),
		OffensiveComments: len(offensive),
		OffenseTypes:      types,
		MostOffensive:     ranked,
		AllOffensive:      offensive,
	}
}

// FilterOffensive returns the offensive comments in input order
func FilterOffensive(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.IsOffensive {
			out = append(out, c)
		}
	}
	return out
}

// SeverityCounts counts offensive comments per severity
func SeverityCounts(comments []models.Comment) map[int]int {
	counts := make(map[int]int)
	for _, c := range comments {
		if c.IsOffensive {
			counts[c.Severity]++
		}
	}
	return counts
}

// TypeCounts converts the offense type counts to plain string keys
func TypeCounts(r models.Report) map[string]int {
	out := make(map[string]int, len(r.OffenseTypes))
	for t, n := range r.OffenseTypes {
		out[string(t)] = n
	}
	return out
}

// SortedTypes returns the report's offense types ordered by name
func SortedTypes(r models.Report) []models.OffenseType {
	types := make([]models.OffenseType, 0, len(r.OffenseTypes))
	for t := range r.OffenseTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
