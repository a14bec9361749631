package cues

import (
	"fmt"
	"sort"
	"strings"

	"subscore/internal/textnorm"
	"subscore/internal/transcript"
)

// RawCue is one time-stamped caption fragment as parsed from a subtitle file
// or synthesized from an OCR frame. The range [StartMs, EndMs) is in
// milliseconds.
type RawCue struct {
	ID      string
	StartMs int64
	EndMs   int64
	Text    string
}

// MergeOptions tunes the cue merge heuristic. Zero values select defaults.
type MergeOptions struct {
	// MaxGapMs is the largest silence between cues that still continues the
	// current line. Defaults to 1000.
	MaxGapMs int64
	// MaxLineRunes caps the merged text length before a forced flush.
	// Defaults to 120.
	MaxLineRunes int
	// FoldWidth folds half-width/full-width variants in cue text at
	// intake. Set for OCR-derived cues, whose engines mix widths.
	FoldWidth bool
}

const (
	defaultMaxGapMs     = 1000
	defaultMaxLineRunes = 120

	// minCueRunMs replaces a nonpositive cue duration so merged line ranges
	// stay half-open and nonempty.
	minCueRunMs = 500
)

// sentenceTerminals end a spoken line; a pending line whose text ends with
// one of these flushes before the next cue is considered.
const sentenceTerminals = "。！？!?…"

type pendingLine struct {
	startMs    int64
	endMs      int64
	parts      []string
	provenance []string
}

// Merge joins a chronological stream of raw cues into candidate lines.
// Cues with no dialogue content after normalization are dropped. A cue whose
// normalized text repeats, or extends as a superstring of, the pending line's
// last fragment replaces that fragment instead of appending (rolling-caption
// dedup). The pending line flushes on sentence-final punctuation, on a timing
// gap beyond MaxGapMs, or when the merged text would exceed MaxLineRunes.
//
// Output lines are sorted by start time, non-overlapping, with EndMs > StartMs
// and ProvenanceIDs carrying the contributing cue IDs in order.
func Merge(raw []RawCue, opts MergeOptions) []transcript.CandidateLine {
	if opts.MaxGapMs <= 0 {
		opts.MaxGapMs = defaultMaxGapMs
	}
	if opts.MaxLineRunes <= 0 {
		opts.MaxLineRunes = defaultMaxLineRunes
	}

	ordered := make([]RawCue, 0, len(raw))
	for _, cue := range raw {
		if opts.FoldWidth {
			cue.Text = textnorm.FoldWidth(cue.Text)
		}
		if textnorm.Normalize(cue.Text) == "" {
			continue
		}
		if cue.EndMs <= cue.StartMs {
			cue.EndMs = cue.StartMs + minCueRunMs
		}
		ordered = append(ordered, cue)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartMs < ordered[j].StartMs
	})

	var lines []transcript.CandidateLine
	var pending *pendingLine
	flush := func() {
		if pending == nil {
			return
		}
		lines = append(lines, transcript.CandidateLine{
			LineID:        fmt.Sprintf("cue-%03d", len(lines)+1),
			StartMs:       pending.startMs,
			EndMs:         pending.endMs,
			Text:          strings.Join(pending.parts, "\n"),
			ProvenanceIDs: pending.provenance,
		})
		pending = nil
	}

	for _, cue := range ordered {
		if pending != nil && shouldFlush(pending, cue, opts) {
			flush()
		}
		if pending == nil {
			pending = &pendingLine{
				startMs:    cue.StartMs,
				endMs:      cue.EndMs,
				parts:      []string{cue.Text},
				provenance: []string{cue.ID},
			}
			continue
		}

		tail := pending.parts[len(pending.parts)-1]
		switch rollingRelation(tail, cue.Text) {
		case rollingRepeat:
			// Same caption re-emitted; only the time range grows.
		case rollingExtend:
			pending.parts[len(pending.parts)-1] = cue.Text
		default:
			pending.parts = append(pending.parts, cue.Text)
		}
		if cue.EndMs > pending.endMs {
			pending.endMs = cue.EndMs
		}
		pending.provenance = append(pending.provenance, cue.ID)
	}
	flush()

	// Producer contract: sorted, non-overlapping, nonempty ranges.
	for i := 1; i < len(lines); i++ {
		if lines[i].StartMs < lines[i-1].EndMs {
			lines[i].StartMs = lines[i-1].EndMs
		}
		if lines[i].EndMs <= lines[i].StartMs {
			lines[i].EndMs = lines[i].StartMs + minCueRunMs
		}
	}
	return lines
}

func shouldFlush(pending *pendingLine, next RawCue, opts MergeOptions) bool {
	// Measured with the same separator flush materializes with.
	lineText := strings.Join(pending.parts, "\n")
	trimmed := strings.TrimSpace(lineText)
	if trimmed != "" {
		last := []rune(trimmed)[len([]rune(trimmed))-1]
		if strings.ContainsRune(sentenceTerminals, last) {
			return true
		}
	}
	if next.StartMs-pending.endMs > opts.MaxGapMs {
		return true
	}
	// A rolling repeat never lengthens the line, so it may always continue.
	tail := pending.parts[len(pending.parts)-1]
	if rollingRelation(tail, next.Text) == rollingAppend {
		merged := len([]rune(lineText)) + 1 + len([]rune(next.Text))
		if merged > opts.MaxLineRunes {
			return true
		}
	}
	return false
}

type rollingKind int

const (
	rollingAppend rollingKind = iota
	rollingRepeat
	rollingExtend
)

// rollingRelation classifies a new cue against the pending line's tail
// fragment. Rolling captions re-send the visible text each time it grows, so
// an identical or prefix-extended cue is repetition, not new dialogue.
func rollingRelation(tail, next string) rollingKind {
	normTail := textnorm.Normalize(tail)
	normNext := textnorm.Normalize(next)
	switch {
	case normTail == normNext:
		return rollingRepeat
	case strings.HasPrefix(normNext, normTail):
		return rollingExtend
	default:
		return rollingAppend
	}
}
