package sources

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"subscore/internal/cues"
)

// LoadSRTCues reads an SRT file and returns its cues in file order with
// millisecond timestamps. Malformed blocks are skipped rather than failing
// the whole file; subtitle rips routinely contain a few broken blocks.
func LoadSRTCues(path string) ([]cues.RawCue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}

	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if content == "" {
		return nil, nil
	}

	blocks := strings.Split(content, "\n\n")
	var raw []cues.RawCue
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		var index int
		if _, err := fmt.Sscanf(lines[0], "%d", &index); err != nil {
			continue
		}
		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			continue
		}
		startMs, err := parseSRTTimestampMs(parts[0])
		if err != nil {
			continue
		}
		endMs, err := parseSRTTimestampMs(parts[1])
		if err != nil {
			continue
		}

		raw = append(raw, cues.RawCue{
			ID:      fmt.Sprintf("srt-%d", index),
			StartMs: startMs,
			EndMs:   endMs,
			Text:    strings.Join(lines[2:], "\n"),
		})
	}
	return raw, nil
}

func parseSRTTimestampMs(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// SRT uses a comma before milliseconds; tolerate the period variant.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return int64(hours*3600_000 + minutes*60_000 + seconds*1000 + millis), nil
}
