package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subscore/internal/runstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved comparison runs",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var episode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runstore.Open(cfg.DatabasePath())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), episode)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.RunID,
					run.Episode,
					run.SourceLabel,
					fmt.Sprintf("%d/%d", run.MatchedLines, run.ScriptLines),
					formatMetric(run.CorpusAccuracy),
					run.CreatedAt.Format(time.RFC3339),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Episode", "Source", "Matched", "Corpus", "Created"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&episode, "episode", "", "Only list runs for this episode")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one saved run with per-line results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runstore.Open(cfg.DatabasePath())
			if err != nil {
				return err
			}
			defer store.Close()

			run, report, err := store.GetRun(cmd.Context(), args[0])
			if errors.Is(err, runstore.ErrNotFound) {
				return fmt.Errorf("no run with ID %s", args[0])
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s  episode=%s  source=%s  created=%s\n",
				run.RunID, run.Episode, run.SourceLabel, run.CreatedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "Corpus accuracy %s, mean %s, median %s, matched %d/%d\n\n",
				formatMetric(report.CorpusAccuracy),
				formatMetric(report.MeanLineAccuracy),
				formatMetric(report.MedianLineAccuracy),
				report.MatchedLines, report.ScriptDialogueLines)

			rows := make([][]string, 0, len(report.Lines))
			for _, line := range report.Lines {
				rows = append(rows, []string{
					line.LineID,
					line.ScriptText,
					line.MatchedText,
					strconv.Itoa(len(line.MatchedIDs)),
					formatMetric(line.CharacterAccuracy),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Line", "Script", "Matched", "Window", "Accuracy"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full report as JSON")
	return cmd
}
