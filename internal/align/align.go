package align

import (
	"strings"

	"subscore/internal/editdist"
	"subscore/internal/textnorm"
	"subscore/internal/transcript"
)

// Result records one script line's alignment outcome. MatchedText is the
// concatenation of the winning window's candidate texts in order; MatchedIDs
// is empty when no window was assigned. CharacterAccuracy is exactly
// 1 - Distance.
type Result struct {
	LineID            string   `json:"lineId"`
	ScriptText        string   `json:"scriptText"`
	MatchedText       string   `json:"matchedText,omitempty"`
	MatchedIDs        []string `json:"matchedLineIds,omitempty"`
	Distance          float64  `json:"distance"`
	CharacterAccuracy float64  `json:"characterAccuracy"`
}

// Options tunes the window search. The zero value is not useful; call
// DefaultOptions.
type Options struct {
	// MaxWindow is the largest number of contiguous candidate lines
	// considered as one unit.
	MaxWindow int
	// AllowNonSequentialMatch permits a script line to match a window
	// starting before previously consumed candidates. When false, windows
	// must start at or after the end of the last consumed window.
	AllowNonSequentialMatch bool
}

// DefaultOptions matches windows of up to five candidate lines anywhere in
// the candidate list.
func DefaultOptions() Options {
	return Options{MaxWindow: 5, AllowNonSequentialMatch: true}
}

// Align produces one Result per script line, in authored order. Script lines
// whose normalized text is empty emit an empty match without searching and
// never consume candidates. A nonempty script line with no available window
// scores as a full mismatch (Distance 1).
func Align(script []transcript.ScriptLine, candidates []transcript.CandidateLine, opts Options) []Result {
	if opts.MaxWindow <= 0 {
		opts.MaxWindow = 5
	}

	normCandidates := make([]string, len(candidates))
	for i, c := range candidates {
		normCandidates[i] = textnorm.Normalize(c.Text)
	}
	used := make([]bool, len(candidates))
	cursor := 0 // first admissible start offset in monotonic mode

	results := make([]Result, 0, len(script))
	for _, line := range script {
		normScript := textnorm.Normalize(line.Text)
		if normScript == "" {
			results = append(results, Result{
				LineID:            line.LineID,
				ScriptText:        line.Text,
				Distance:          0,
				CharacterAccuracy: 1,
			})
			continue
		}

		bestStart, bestSize := -1, 0
		bestDistance := 0.0
		maxWindow := min(opts.MaxWindow, len(candidates))
		minStart := 0
		if !opts.AllowNonSequentialMatch {
			minStart = cursor
		}
		// Window sizes are the outer loop, so ties keep the smallest window
		// and then the smallest start offset.
		for size := 1; size <= maxWindow; size++ {
			for start := minStart; start+size <= len(candidates); start++ {
				if windowUsed(used, start, size) {
					continue
				}
				var joined strings.Builder
				for i := start; i < start+size; i++ {
					joined.WriteString(normCandidates[i])
				}
				// Re-normalizing the join collapses ellipsis runs that span a
				// line boundary, matching normalize(concat(raw texts)).
				distance := editdist.NormalizedDistance(normScript, textnorm.Normalize(joined.String()))
				if bestStart < 0 || distance < bestDistance {
					bestStart, bestSize, bestDistance = start, size, distance
				}
			}
		}

		if bestStart < 0 {
			// No unused window exists; the line counts as fully unmatched.
			results = append(results, Result{
				LineID:            line.LineID,
				ScriptText:        line.Text,
				Distance:          1,
				CharacterAccuracy: 0,
			})
			continue
		}

		matchedIDs := make([]string, 0, bestSize)
		var matchedText strings.Builder
		for i := bestStart; i < bestStart+bestSize; i++ {
			used[i] = true
			matchedIDs = append(matchedIDs, candidates[i].LineID)
			matchedText.WriteString(candidates[i].Text)
		}
		if end := bestStart + bestSize; end > cursor {
			cursor = end
		}
		results = append(results, Result{
			LineID:            line.LineID,
			ScriptText:        line.Text,
			MatchedText:       matchedText.String(),
			MatchedIDs:        matchedIDs,
			Distance:          bestDistance,
			CharacterAccuracy: 1 - bestDistance,
		})
	}
	return results
}

func windowUsed(used []bool, start, size int) bool {
	for i := start; i < start+size; i++ {
		if used[i] {
			return true
		}
	}
	return false
}
