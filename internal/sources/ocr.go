package sources

import (
	"encoding/json"
	"fmt"
	"os"

	"subscore/internal/cues"
)

type ocrFramePayload struct {
	TimestampSec float64 `json:"timestampSec"`
	SubtitleText *string `json:"subtitleText"`
	Filename     string  `json:"filename"`
}

type ocrPayload struct {
	Episode int               `json:"episode"`
	Frames  []ocrFramePayload `json:"frames"`
}

// LoadOCRFrames reads a frame-OCR JSON file and returns its frame records.
// Frames with null or empty caption text are dropped here, before the cue
// adapter runs.
func LoadOCRFrames(path string) ([]cues.FrameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ocr json: %w", err)
	}
	var payload ocrPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse ocr json: %w", err)
	}

	frames := make([]cues.FrameRecord, 0, len(payload.Frames))
	for _, frame := range payload.Frames {
		if frame.SubtitleText == nil || *frame.SubtitleText == "" {
			continue
		}
		frames = append(frames, cues.FrameRecord{
			TimestampSec: frame.TimestampSec,
			SubtitleText: *frame.SubtitleText,
			Filename:     frame.Filename,
		})
	}
	return frames, nil
}
