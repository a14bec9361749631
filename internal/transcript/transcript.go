package transcript

// ScriptLine is one line of the authoritative script. Speaker is empty for
// unattributed lines. Direction lines are stage directions, not dialogue, and
// are filtered out before comparison.
type ScriptLine struct {
	LineID      string
	Speaker     string
	Text        string
	IsDirection bool
}

// CandidateLine is one line of a non-authoritative transcript source. The
// half-open time range [StartMs, EndMs) is in milliseconds. ProvenanceIDs
// records which raw cues or frames were merged to produce the line, in order.
type CandidateLine struct {
	LineID        string
	StartMs       int64
	EndMs         int64
	Text          string
	ProvenanceIDs []string
}

// Source bundles a labeled candidate line list, e.g. "srt-merged" or
// "whisper-medium".
type Source struct {
	Label string
	Lines []CandidateLine
}

// DialogueOnly returns the script lines that carry spoken dialogue, in
// authored order. Direction lines are dropped.
func DialogueOnly(lines []ScriptLine) []ScriptLine {
	dialogue := make([]ScriptLine, 0, len(lines))
	for _, line := range lines {
		if line.IsDirection {
			continue
		}
		dialogue = append(dialogue, line)
	}
	return dialogue
}

// DedupeSources drops sources whose label already appeared earlier in the
// slice, keeping the first occurrence. Agreement and report consumers expect
// at most one source per label; this is the caller-side pre-filter.
func DedupeSources(sources []Source) []Source {
	seen := make(map[string]struct{}, len(sources))
	kept := make([]Source, 0, len(sources))
	for _, src := range sources {
		if _, ok := seen[src.Label]; ok {
			continue
		}
		seen[src.Label] = struct{}{}
		kept = append(kept, src)
	}
	return kept
}
