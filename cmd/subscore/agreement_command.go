package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"subscore/internal/score"
	"subscore/internal/transcript"
)

func newAgreementCommand(ctx *commandContext) *cobra.Command {
	var srtPath string
	var whisperPath string
	var ocrPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "agreement",
		Short: "Corpus-level agreement between candidate sources",
		Long: "Compares candidate transcript sources pairwise at corpus granularity.\n" +
			"No ground truth is involved; the score reflects how closely the\n" +
			"concatenated dialogue of each pair matches.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			candidateSources, err := loadCandidateSources(cfg, srtPath, whisperPath, ocrPath)
			if err != nil {
				return err
			}
			candidateSources = transcript.DedupeSources(candidateSources)
			if len(candidateSources) < 2 {
				return errors.New("agreement needs at least two candidate sources")
			}

			var results []score.AgreementResult
			for i := 0; i < len(candidateSources); i++ {
				for j := i + 1; j < len(candidateSources); j++ {
					results = append(results, score.Agreement(candidateSources[i], candidateSources[j]))
				}
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				rows = append(rows, []string{res.SourceLabelA, res.SourceLabelB, formatMetric(res.Score)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Source A", "Source B", "Agreement"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&srtPath, "srt", "", "Path to an SRT subtitle file")
	cmd.Flags().StringVar(&whisperPath, "whisper", "", "Path to a whisper transcription JSON file")
	cmd.Flags().StringVar(&ocrPath, "ocr", "", "Path to a frame-OCR JSON file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")

	return cmd
}
