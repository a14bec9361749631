package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subscore/internal/align"
	"subscore/internal/config"
	"subscore/internal/cues"
	"subscore/internal/logging"
	"subscore/internal/runstore"
	"subscore/internal/score"
	"subscore/internal/sources"
	"subscore/internal/transcript"
)

// sourceLabels name the candidate provenance per input kind. Two inputs of
// the same kind would collide; the dedupe pre-filter keeps the first.
const (
	labelSRTMerged = "srt-merged"
	labelWhisper   = "whisper"
	labelVideoOCR  = "video-ocr"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var scriptPath string
	var srtPath string
	var whisperPath string
	var ocrPath string
	var episode string
	var jsonOutput bool
	var save bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Score candidate transcripts against the script",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			scriptPath = resolveInputPath(cfg, scriptPath)
			scriptLines, err := sources.LoadScript(scriptPath)
			if err != nil {
				return err
			}
			dialogue := transcript.DialogueOnly(scriptLines)
			logger.Info("loaded script",
				"path", scriptPath,
				"lines", len(scriptLines),
				"dialogue", len(dialogue))

			candidateSources, err := loadCandidateSources(cfg, srtPath, whisperPath, ocrPath)
			if err != nil {
				return err
			}
			if len(candidateSources) == 0 {
				return errors.New("no candidate sources given (use --srt, --whisper, or --ocr)")
			}
			candidateSources = transcript.DedupeSources(candidateSources)

			opts := align.Options{
				MaxWindow:               cfg.Alignment.MaxWindow,
				AllowNonSequentialMatch: cfg.Alignment.AllowNonSequential,
			}

			reports := make([]score.AccuracyReport, 0, len(candidateSources))
			for _, src := range candidateSources {
				results := align.Align(dialogue, src.Lines, opts)
				report := score.Aggregate(dialogue, src.Lines, results, src.Label)
				logger.Info("scored source",
					"label", src.Label,
					"matched", report.MatchedLines,
					"corpusAccuracy", report.CorpusAccuracy)
				reports = append(reports, report)
			}

			if save {
				if err := saveReports(cmd, cfg, episode, reports); err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, reports)
			}
			printReportTable(cmd, reports)
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to the script JSON file (required)")
	cmd.Flags().StringVar(&srtPath, "srt", "", "Path to an SRT subtitle file")
	cmd.Flags().StringVar(&whisperPath, "whisper", "", "Path to a whisper transcription JSON file")
	cmd.Flags().StringVar(&ocrPath, "ocr", "", "Path to a frame-OCR JSON file")
	cmd.Flags().StringVar(&episode, "episode", "", "Episode label for saved runs")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit reports as JSON")
	cmd.Flags().BoolVar(&save, "save", false, "Persist reports to the run database")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

// loadCandidateSources builds one labeled source per provided input path.
// SRT cues and OCR frames run through the cue merge heuristic; whisper
// segments are already sentence-shaped and convert directly.
func loadCandidateSources(cfg *config.Config, srtPath, whisperPath, ocrPath string) ([]transcript.Source, error) {
	mergeOpts := cues.MergeOptions{
		MaxGapMs:     cfg.CueMerge.MaxGapMs,
		MaxLineRunes: cfg.CueMerge.MaxLineRunes,
	}

	var list []transcript.Source
	if srtPath != "" {
		raw, err := sources.LoadSRTCues(resolveInputPath(cfg, srtPath))
		if err != nil {
			return nil, err
		}
		list = append(list, transcript.Source{
			Label: labelSRTMerged,
			Lines: cues.Merge(raw, mergeOpts),
		})
	}
	if whisperPath != "" {
		lines, err := sources.LoadWhisperSegments(resolveInputPath(cfg, whisperPath))
		if err != nil {
			return nil, err
		}
		list = append(list, transcript.Source{Label: labelWhisper, Lines: lines})
	}
	if ocrPath != "" {
		frames, err := sources.LoadOCRFrames(resolveInputPath(cfg, ocrPath))
		if err != nil {
			return nil, err
		}
		ocrOpts := mergeOpts
		ocrOpts.FoldWidth = true
		list = append(list, transcript.Source{
			Label: labelVideoOCR,
			Lines: cues.Merge(cues.FromFrames(frames), ocrOpts),
		})
	}
	return list, nil
}

func saveReports(cmd *cobra.Command, cfg *config.Config, episode string, reports []score.AccuracyReport) error {
	if episode == "" {
		return errors.New("--save requires --episode")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	store, err := runstore.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer store.Close()

	for _, report := range reports {
		runID, err := store.SaveReport(cmd.Context(), episode, report)
		if err != nil {
			return fmt.Errorf("save report for %s: %w", report.SourceLabel, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved run %s (%s)\n", runID, report.SourceLabel)
	}
	return nil
}

func printReportTable(cmd *cobra.Command, reports []score.AccuracyReport) {
	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, []string{
			report.SourceLabel,
			strconv.Itoa(report.ScriptDialogueLines),
			strconv.Itoa(report.MatchedLines),
			formatMetric(report.CorpusAccuracy),
			formatMetric(report.MeanLineAccuracy),
			formatMetric(report.MedianLineAccuracy),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Source", "Lines", "Matched", "Corpus", "Mean", "Median"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
