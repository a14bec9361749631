package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subscore/internal/cues"
	"subscore/internal/sources"
	"subscore/internal/transcript"
)

func newCuesCommand(ctx *commandContext) *cobra.Command {
	cuesCmd := &cobra.Command{
		Use:   "cues",
		Short: "Inspect the cue merge heuristic",
	}
	cuesCmd.AddCommand(newCuesMergeCommand(ctx))
	return cuesCmd
}

func newCuesMergeCommand(ctx *commandContext) *cobra.Command {
	var srtPath string
	var ocrPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Show merged candidate lines for a cue source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var raw []cues.RawCue
			switch {
			case srtPath != "" && ocrPath != "":
				return errors.New("give either --srt or --ocr, not both")
			case srtPath != "":
				raw, err = sources.LoadSRTCues(resolveInputPath(cfg, srtPath))
			case ocrPath != "":
				var frames []cues.FrameRecord
				frames, err = sources.LoadOCRFrames(resolveInputPath(cfg, ocrPath))
				if err == nil {
					raw = cues.FromFrames(frames)
				}
			default:
				return errors.New("give --srt or --ocr")
			}
			if err != nil {
				return err
			}

			lines := cues.Merge(raw, cues.MergeOptions{
				MaxGapMs:     cfg.CueMerge.MaxGapMs,
				MaxLineRunes: cfg.CueMerge.MaxLineRunes,
				FoldWidth:    ocrPath != "",
			})

			if jsonOutput {
				return writeJSON(cmd, mergedLinesPayload(lines))
			}
			rows := make([][]string, 0, len(lines))
			for _, line := range lines {
				rows = append(rows, []string{
					line.LineID,
					formatMs(line.StartMs),
					formatMs(line.EndMs),
					strconv.Itoa(len(line.ProvenanceIDs)),
					strings.ReplaceAll(line.Text, "\n", " "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Line", "Start", "End", "Cues", "Text"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d raw cues merged into %d lines\n", len(raw), len(lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&srtPath, "srt", "", "Path to an SRT subtitle file")
	cmd.Flags().StringVar(&ocrPath, "ocr", "", "Path to a frame-OCR JSON file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit merged lines as JSON")

	return cmd
}

type mergedLine struct {
	LineID        string   `json:"lineId"`
	StartMs       int64    `json:"startMs"`
	EndMs         int64    `json:"endMs"`
	Text          string   `json:"text"`
	ProvenanceIDs []string `json:"provenanceIds"`
}

func mergedLinesPayload(lines []transcript.CandidateLine) []mergedLine {
	payload := make([]mergedLine, 0, len(lines))
	for _, line := range lines {
		payload = append(payload, mergedLine{
			LineID:        line.LineID,
			StartMs:       line.StartMs,
			EndMs:         line.EndMs,
			Text:          line.Text,
			ProvenanceIDs: line.ProvenanceIDs,
		})
	}
	return payload
}

func formatMs(ms int64) string {
	seconds := ms / 1000
	return fmt.Sprintf("%02d:%02d.%03d", seconds/60, seconds%60, ms%1000)
}
