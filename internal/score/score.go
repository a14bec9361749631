package score

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"subscore/internal/align"
	"subscore/internal/editdist"
	"subscore/internal/textnorm"
	"subscore/internal/transcript"
)

// AccuracyReport aggregates one (script, candidate source) comparison.
// CorpusAccuracy is computed over the fully concatenated text of each side,
// independent of the per-line alignment, so it is insensitive to how either
// side segmented the dialogue.
type AccuracyReport struct {
	SourceLabel         string         `json:"sourceLabel"`
	ScriptDialogueLines int            `json:"scriptDialogueLines"`
	MatchedLines        int            `json:"matchedLines"`
	CorpusDistance      float64        `json:"corpusDistance"`
	CorpusAccuracy      float64        `json:"corpusAccuracy"`
	MeanLineAccuracy    float64        `json:"meanLineAccuracy"`
	MedianLineAccuracy  float64        `json:"medianLineAccuracy"`
	Lines               []align.Result `json:"lines"`
}

// AgreementResult is the corpus-level similarity between two candidate
// sources, neither of which is authoritative.
type AgreementResult struct {
	SourceLabelA string  `json:"sourceLabelA"`
	SourceLabelB string  `json:"sourceLabelB"`
	Score        float64 `json:"agreementScore"`
}

// Aggregate combines per-line alignment results and a whole-corpus
// comparison into one report. The mean and median run over every script
// line's result, including zero-match entries, so sparse sources are
// penalized rather than silently skipped. Mean and median over zero results
// are 0.
func Aggregate(script []transcript.ScriptLine, candidates []transcript.CandidateLine, results []align.Result, label string) AccuracyReport {
	var scriptText, candidateText strings.Builder
	for _, line := range script {
		scriptText.WriteString(line.Text)
	}
	for _, line := range candidates {
		candidateText.WriteString(line.Text)
	}
	corpusDistance := editdist.NormalizedDistance(
		textnorm.Normalize(scriptText.String()),
		textnorm.Normalize(candidateText.String()),
	)

	matched := 0
	accuracies := make([]float64, 0, len(results))
	for _, res := range results {
		if len(res.MatchedIDs) > 0 {
			matched++
		}
		accuracies = append(accuracies, res.CharacterAccuracy)
	}

	var mean, median float64
	if len(accuracies) > 0 {
		mean = stat.Mean(accuracies, nil)
		sort.Float64s(accuracies)
		median = medianSorted(accuracies)
	}

	return AccuracyReport{
		SourceLabel:         label,
		ScriptDialogueLines: len(results),
		MatchedLines:        matched,
		CorpusDistance:      round3(corpusDistance),
		CorpusAccuracy:      round3(1 - corpusDistance),
		MeanLineAccuracy:    round3(mean),
		MedianLineAccuracy:  round3(median),
		Lines:               results,
	}
}

// Agreement compares two candidate sources at corpus granularity only. Line
// ordering in non-authoritative sources is too unreliable to align, so only
// the coarse concatenated-text signal is trusted. Callers comparing several
// sources deduplicate labels beforehand (transcript.DedupeSources); this
// function will happily compare duplicates if given them.
func Agreement(a, b transcript.Source) AgreementResult {
	var textA, textB strings.Builder
	for _, line := range a.Lines {
		textA.WriteString(line.Text)
	}
	for _, line := range b.Lines {
		textB.WriteString(line.Text)
	}
	distance := editdist.NormalizedDistance(
		textnorm.Normalize(textA.String()),
		textnorm.Normalize(textB.String()),
	)
	return AgreementResult{
		SourceLabelA: a.Label,
		SourceLabelB: b.Label,
		Score:        round3(1 - distance),
	}
}

// medianSorted averages the two middle values for even counts. Gonum's
// quantile kinds all pick a single sample at p=0.5, so this stays by hand.
func medianSorted(s []float64) float64 {
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
