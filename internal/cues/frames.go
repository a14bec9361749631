package cues

// FrameRecord is one sampled video frame as reported by the OCR collaborator.
// SubtitleText is empty when the frame carried no caption.
type FrameRecord struct {
	TimestampSec float64
	SubtitleText string
	Filename     string
}

// frameCueRunMs is the synthetic duration assigned to a frame-derived cue.
// Frames are sampled, not ranged, so each caption is treated as a ~5 second
// cue anchored at its frame timestamp.
const frameCueRunMs = 5000

// FromFrames converts OCR frame records 1:1 into raw cues. Frames with empty
// caption text are dropped; the frame filename becomes the cue ID so merged
// lines keep an audit trail back to the source image.
func FromFrames(frames []FrameRecord) []RawCue {
	cues := make([]RawCue, 0, len(frames))
	for _, frame := range frames {
		if frame.SubtitleText == "" {
			continue
		}
		startMs := int64(frame.TimestampSec * 1000)
		cues = append(cues, RawCue{
			ID:      frame.Filename,
			StartMs: startMs,
			EndMs:   startMs + frameCueRunMs,
			Text:    frame.SubtitleText,
		})
	}
	return cues
}
