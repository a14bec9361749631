package sources

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"subscore/internal/transcript"
)

type whisperSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperPayload struct {
	Segments []whisperSegment `json:"segments"`
}

// LoadWhisperSegments reads a whisper transcription JSON file and returns one
// candidate line per segment. Speech-recognition segments are already
// sentence-shaped, so they skip the cue merge step. Empty segments are
// dropped.
func LoadWhisperSegments(path string) ([]transcript.CandidateLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whisper json: %w", err)
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}

	lines := make([]transcript.CandidateLine, 0, len(payload.Segments))
	for i, seg := range payload.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		startMs := int64(seg.Start * 1000)
		endMs := int64(seg.End * 1000)
		if endMs <= startMs {
			endMs = startMs + 500
		}
		segID := fmt.Sprintf("seg-%03d", i+1)
		lines = append(lines, transcript.CandidateLine{
			LineID:        segID,
			StartMs:       startMs,
			EndMs:         endMs,
			Text:          text,
			ProvenanceIDs: []string{segID},
		})
	}
	return lines, nil
}
