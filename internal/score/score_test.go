package score

import (
	"testing"

	"subscore/internal/align"
	"subscore/internal/transcript"
)

func scriptLines(texts ...string) []transcript.ScriptLine {
	lines := make([]transcript.ScriptLine, len(texts))
	for i, text := range texts {
		lines[i] = transcript.ScriptLine{LineID: "s", Text: text}
	}
	return lines
}

func candidateLines(texts ...string) []transcript.CandidateLine {
	lines := make([]transcript.CandidateLine, len(texts))
	for i, text := range texts {
		lines[i] = transcript.CandidateLine{
			LineID:  "c",
			StartMs: int64(i * 1000),
			EndMs:   int64(i*1000 + 900),
			Text:    text,
		}
	}
	return lines
}

func TestAggregateIdenticalSource(t *testing.T) {
	texts := []string{"こんにちは", "元気ですか", "さようなら"}
	gt := scriptLines(texts...)
	cand := candidateLines(texts...)
	results := align.Align(gt, cand, align.DefaultOptions())

	report := Aggregate(gt, cand, results, "srt-merged")
	if report.SourceLabel != "srt-merged" {
		t.Fatalf("expected source label preserved, got %q", report.SourceLabel)
	}
	if report.ScriptDialogueLines != 3 || report.MatchedLines != 3 {
		t.Fatalf("expected 3/3 matched, got %d/%d", report.MatchedLines, report.ScriptDialogueLines)
	}
	if report.CorpusAccuracy != 1 {
		t.Fatalf("expected corpus accuracy 1.0, got %f", report.CorpusAccuracy)
	}
	if report.MeanLineAccuracy != 1 || report.MedianLineAccuracy != 1 {
		t.Fatalf("expected perfect line metrics, got mean=%f median=%f", report.MeanLineAccuracy, report.MedianLineAccuracy)
	}
}

func TestAggregateCorpusIgnoresSegmentation(t *testing.T) {
	gt := scriptLines("こんにちは", "元気？")
	// Same text, different segmentation.
	cand := candidateLines("こんにちは元気？")
	results := align.Align(gt, cand, align.DefaultOptions())

	report := Aggregate(gt, cand, results, "ocr")
	if report.CorpusAccuracy != 1 {
		t.Fatalf("expected segmentation-agnostic corpus accuracy 1.0, got %f", report.CorpusAccuracy)
	}
	if report.MatchedLines >= report.ScriptDialogueLines {
		// One line took the merged cue, the other went unmatched.
		t.Fatalf("expected line-level penalty, got %d/%d", report.MatchedLines, report.ScriptDialogueLines)
	}
}

func TestAggregateEmptyCandidates(t *testing.T) {
	gt := scriptLines("こんにちは", "元気？")
	results := align.Align(gt, nil, align.DefaultOptions())

	report := Aggregate(gt, nil, results, "missing")
	if report.MatchedLines != 0 {
		t.Fatalf("expected no matches, got %d", report.MatchedLines)
	}
	if report.MeanLineAccuracy != 0 {
		t.Fatalf("expected mean 0 for absent source, got %f", report.MeanLineAccuracy)
	}
	if report.CorpusAccuracy != 0 {
		t.Fatalf("expected corpus accuracy 0 against empty source, got %f", report.CorpusAccuracy)
	}
}

func TestAggregateNoResults(t *testing.T) {
	report := Aggregate(nil, nil, nil, "empty")
	if report.ScriptDialogueLines != 0 || report.MatchedLines != 0 {
		t.Fatalf("expected zero counts, got %+v", report)
	}
	if report.MeanLineAccuracy != 0 || report.MedianLineAccuracy != 0 {
		t.Fatalf("expected zero metrics without divide-by-zero, got %+v", report)
	}
}

func TestAggregateMedianAveragesMiddlePair(t *testing.T) {
	results := []align.Result{
		{CharacterAccuracy: 1.0, MatchedIDs: []string{"a"}},
		{CharacterAccuracy: 0.8, MatchedIDs: []string{"b"}},
		{CharacterAccuracy: 0.5, MatchedIDs: []string{"c"}},
		{CharacterAccuracy: 0.1, MatchedIDs: []string{"d"}},
	}
	report := Aggregate(nil, nil, results, "mixed")
	if report.MedianLineAccuracy != 0.65 {
		t.Fatalf("expected median 0.65, got %f", report.MedianLineAccuracy)
	}
	if report.MeanLineAccuracy != 0.6 {
		t.Fatalf("expected mean 0.6, got %f", report.MeanLineAccuracy)
	}
}

func TestAggregateMedianEvenAndOddCounts(t *testing.T) {
	cases := []struct {
		name       string
		accuracies []float64
		want       float64
	}{
		{"two values", []float64{0, 1}, 0.5},
		{"four values", []float64{0, 0.2, 0.8, 1.0}, 0.5},
		{"three values", []float64{0.2, 0.9, 0.4}, 0.4},
		{"single value", []float64{0.7}, 0.7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := make([]align.Result, len(tc.accuracies))
			for i, acc := range tc.accuracies {
				results[i] = align.Result{CharacterAccuracy: acc, MatchedIDs: []string{"c"}}
			}
			report := Aggregate(nil, nil, results, "medians")
			if report.MedianLineAccuracy != tc.want {
				t.Fatalf("expected median %f, got %f", tc.want, report.MedianLineAccuracy)
			}
		})
	}
}

func TestAggregateRoundsToThreeDecimals(t *testing.T) {
	results := []align.Result{
		{CharacterAccuracy: 1.0 / 3.0, MatchedIDs: []string{"a"}},
	}
	report := Aggregate(nil, nil, results, "rounded")
	if report.MeanLineAccuracy != 0.333 {
		t.Fatalf("expected 0.333, got %f", report.MeanLineAccuracy)
	}
}

func TestAgreementIdenticalTextDifferentSegmentation(t *testing.T) {
	a := transcript.Source{Label: "srt-merged", Lines: candidateLines("こんにちは", "元気？")}
	b := transcript.Source{Label: "whisper-medium", Lines: candidateLines("こんにちは元気？")}
	res := Agreement(a, b)
	if res.Score != 1 {
		t.Fatalf("expected corpus-level agreement 1.0, got %f", res.Score)
	}
	if res.SourceLabelA != "srt-merged" || res.SourceLabelB != "whisper-medium" {
		t.Fatalf("expected labels carried through, got %+v", res)
	}
}

func TestAgreementDisjointSources(t *testing.T) {
	a := transcript.Source{Label: "a", Lines: candidateLines("あいうえお")}
	b := transcript.Source{Label: "b", Lines: candidateLines("かきくけこ")}
	res := Agreement(a, b)
	if res.Score != 0 {
		t.Fatalf("expected agreement 0 for disjoint text, got %f", res.Score)
	}
}

func TestAgreementBothEmpty(t *testing.T) {
	res := Agreement(transcript.Source{Label: "a"}, transcript.Source{Label: "b"})
	if res.Score != 1 {
		t.Fatalf("expected two empty sources to agree fully, got %f", res.Score)
	}
}
