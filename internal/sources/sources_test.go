package sources

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadScriptFlattensScenes(t *testing.T) {
	path := writeFixture(t, "script.json", `{
		"episode": 7,
		"scenes": [
			{"sceneId": "s1", "lines": [
				{"lineId": "s1-l1", "speaker": "ミナミ", "text": "こんにちは"},
				{"lineId": "s1-l2", "text": "（艦橋）", "isDirection": true}
			]},
			{"sceneId": "s2", "lines": [
				{"lineId": "s2-l1", "speaker": "ハヤト", "text": "元気？"}
			]}
		]
	}`)

	lines, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines across scenes, got %d", len(lines))
	}
	if lines[0].LineID != "s1-l1" || lines[2].LineID != "s2-l1" {
		t.Fatalf("expected file order preserved, got %+v", lines)
	}
	if !lines[1].IsDirection {
		t.Fatalf("expected direction flag preserved, got %+v", lines[1])
	}
}

func TestLoadSRTCues(t *testing.T) {
	path := writeFixture(t, "ep.srt", `1
00:00:01,000 --> 00:00:03,500
軌道変更を

2
00:00:03,600 --> 00:00:05,000
開始します。

broken block without timing

3
00:01:00,250 --> 00:01:02,000
了解。
`)

	raw, err := LoadSRTCues(path)
	if err != nil {
		t.Fatalf("LoadSRTCues: %v", err)
	}
	if len(raw) != 3 {
		t.Fatalf("expected 3 cues with broken block skipped, got %d", len(raw))
	}
	if raw[0].StartMs != 1000 || raw[0].EndMs != 3500 {
		t.Fatalf("expected millisecond timestamps, got [%d, %d)", raw[0].StartMs, raw[0].EndMs)
	}
	if raw[2].StartMs != 60250 {
		t.Fatalf("expected minute carry, got %d", raw[2].StartMs)
	}
	if raw[0].ID != "srt-1" {
		t.Fatalf("expected cue ID from block index, got %q", raw[0].ID)
	}
}

func TestLoadSRTCuesEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.srt", "\n\n")
	raw, err := LoadSRTCues(path)
	if err != nil {
		t.Fatalf("LoadSRTCues: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("expected no cues, got %d", len(raw))
	}
}

func TestLoadWhisperSegments(t *testing.T) {
	path := writeFixture(t, "whisper.json", `{
		"segments": [
			{"text": " こんにちは ", "start": 1.0, "end": 2.5},
			{"text": "", "start": 2.5, "end": 2.5},
			{"text": "元気？", "start": 3.0, "end": 3.0}
		]
	}`)

	lines, err := LoadWhisperSegments(path)
	if err != nil {
		t.Fatalf("LoadWhisperSegments: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected empty segment dropped, got %d lines", len(lines))
	}
	if lines[0].Text != "こんにちは" {
		t.Fatalf("expected trimmed text, got %q", lines[0].Text)
	}
	if lines[1].EndMs <= lines[1].StartMs {
		t.Fatalf("expected degenerate range widened, got [%d, %d)", lines[1].StartMs, lines[1].EndMs)
	}
}

func TestLoadOCRFrames(t *testing.T) {
	path := writeFixture(t, "ocr.json", `{
		"episode": 7,
		"frames": [
			{"timestampSec": 12, "subtitleText": "こんにちは", "filename": "frame_0012.png"},
			{"timestampSec": 17, "subtitleText": null, "filename": "frame_0017.png"},
			{"timestampSec": 22, "subtitleText": "", "filename": "frame_0022.png"},
			{"timestampSec": 27, "subtitleText": "元気？", "filename": "frame_0027.png"}
		]
	}`)

	frames, err := LoadOCRFrames(path)
	if err != nil {
		t.Fatalf("LoadOCRFrames: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected null and empty captions dropped, got %d", len(frames))
	}
	if frames[1].Filename != "frame_0027.png" {
		t.Fatalf("expected frame order preserved, got %+v", frames)
	}
}

func TestLoadersReportMissingFiles(t *testing.T) {
	if _, err := LoadScript("/nonexistent/script.json"); err == nil {
		t.Fatal("expected error for missing script")
	}
	if _, err := LoadSRTCues("/nonexistent/ep.srt"); err == nil {
		t.Fatal("expected error for missing srt")
	}
	if _, err := LoadWhisperSegments("/nonexistent/w.json"); err == nil {
		t.Fatal("expected error for missing whisper json")
	}
	if _, err := LoadOCRFrames("/nonexistent/ocr.json"); err == nil {
		t.Fatal("expected error for missing ocr json")
	}
}
