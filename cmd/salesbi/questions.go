package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/output"
)

// NewQuestionsCommand creates the questions command.
func NewQuestionsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the catalog questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestions(rootOpts, cmd)
		},
	}

	return cmd
}

func runQuestions(opts *RootOptions, cmd *cobra.Command) error {
	cat, err := opts.loadCatalog()
	if err != nil {
		return err
	}

	w, closeOut, err := opts.openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	switch opts.Format {
	case output.FormatJSON, output.FormatPretty:
		return output.WriteJSON(w, cat.Questions, opts.Format == output.FormatPretty)
	}

	width := 0
	for _, q := range cat.Questions {
		width = max(width, len(q.ID))
	}
	for _, q := range cat.Questions {
		if _, err := fmt.Fprintf(w, "%2d  %-*s  %-4s  %s\n", q.Number, width, q.ID, q.Chart, q.Title); err != nil {
			return err
		}
		if len(q.GroupBy) > 0 {
			fmt.Fprintf(w, "    by %s, %s\n", strings.Join(q.GroupBy, ", "), describe(q))
		}
	}
	return nil
}

// describe renders the reduction and filters of q in one line.
func describe(q engine.Question) string {
	reduction := engine.LabelForAggregation(q.Aggregation, q.Measure)
	return strings.ToLower(reduction) + "; " + engine.FilterLabel(q.Filters)
}
