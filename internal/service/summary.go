package service

import (
	"fmt"
	"io"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/report"
)

// PrintSummary writes the human-readable report
func PrintSummary(w io.Writer, rep models.Report, outputFile string) {
	fmt.Fprintln(w, "\nAnalysis Summary:")
	fmt.Fprintf(w, "Total comments analyzed: %d\n", rep.TotalComments)
	fmt.Fprintf(w, "Offensive comments found: %d\n", rep.OffensiveComments)

	fmt.Fprintln(w, "\nOffense type breakdown:")
	for _, t := range report.SortedTypes(rep) {
		fmt.Fprintf(w, "- %s: %d\n", t, rep.OffenseTypes[t])
	}

	if len(rep.AllOffensive) > 0 {
		fmt.Fprintln(w, "\nAll Offensive Comments:")
		printComments(w, rep.AllOffensive)
	}

	if len(rep.MostOffensive) > 0 {
		fmt.Fprintf(w, "\nTop %d Most Severe Offensive Comments:\n", report.TopN)
		printComments(w, rep.MostOffensive)
	}

	fmt.Fprintf(w, "\nFull analysis saved to %s\n", outputFile)
}

func printComments(w io.Writer, comments []models.Comment) {
	for i, c := range comments {
		fmt.Fprintf(w, "\n%d. Username: %s\n", i+1, c.Username)
		fmt.Fprintf(w, "Comment: %s\n", c.CommentText)
		fmt.Fprintf(w, "Type: %s\n", c.OffenseType)
		fmt.Fprintf(w, "Severity: %d\n", c.Severity)
		fmt.Fprintf(w, "Explanation: %s\n", c.Explanation)
	}
}
