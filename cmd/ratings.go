package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"rating-dashboard/domain/model"
	"rating-dashboard/domain/rating"
	"rating-dashboard/usecase"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newRatingsCommand() *cobra.Command {
	ratingsCmd := &cobra.Command{
		Use:   "ratings",
		Short: "Inspect ratings served by the rating API",
	}

	var output string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every rated item, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := newRatingService().FetchAllSummaries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load ratings: %w", err)
			}
			rating.SortByUpdatedDesc(items)
			return writeSummaries(cmd.OutOrStdout(), output, items)
		},
	}
	listCmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")

	var getOutput string
	getCmd := &cobra.Command{
		Use:   "get [itemId]",
		Short: "Show the rating summary for one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := newRatingService().FetchSummary(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load rating for %q: %w", args[0], err)
			}
			if getOutput == outputTable {
				return writeDetail(cmd.OutOrStdout(), *summary)
			}
			return writeSummaries(cmd.OutOrStdout(), getOutput, []model.RatingSummary{*summary})
		},
	}
	getCmd.Flags().StringVarP(&getOutput, "output", "o", outputTable, "output format: table, json or yaml")

	ratingsCmd.AddCommand(listCmd, getCmd)
	return ratingsCmd
}

func writeSummaries(w io.Writer, format string, items []model.RatingSummary) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(model.RatingList{Items: items})
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(model.RatingList{Items: items}); err != nil {
			return err
		}
		return enc.Close()
	case outputTable:
		if len(items) == 0 {
			_, err := fmt.Fprintln(w, "No rating data available.")
			return err
		}
		presenter := usecase.NewRatingPresenter(nil)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ITEM\tAVERAGE\tTOTAL\tUPDATED")
		for _, item := range items {
			row := presenter.Row(item)
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", row.ItemID, row.Average, row.TotalRatings, row.UpdatedAt)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeDetail(w io.Writer, summary model.RatingSummary) error {
	detail := usecase.NewRatingPresenter(nil).Detail(summary)
	fmt.Fprintf(w, "Item:     %s\n", detail.ItemID)
	fmt.Fprintf(w, "Average:  %s %s\n", detail.Average, starText(detail.Stars))
	fmt.Fprintf(w, "Total:    %d\n", detail.TotalRatings)
	for _, bar := range detail.Bars {
		fmt.Fprintf(w, "  %d★ %5.1f%% (%d)\n", bar.Star, bar.Percent, bar.Count)
	}
	fmt.Fprintf(w, "Created:  %s\n", detail.CreatedAt)
	_, err := fmt.Fprintf(w, "Updated:  %s\n", detail.UpdatedAt)
	return err
}

func starText(stars []bool) string {
	out := make([]rune, 0, len(stars))
	for _, filled := range stars {
		if filled {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}
