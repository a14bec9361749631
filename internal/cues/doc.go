// Package cues turns raw time-stamped caption cues into merged candidate
// transcript lines. Broadcast subtitles split sentences across cues and
// rolling captions re-emit the same text as it grows; the merge heuristic
// joins fragments by punctuation and timing gap and collapses the
// repetition, producing lines the aligner can score against a script.
//
// The package also adapts OCR frame records into fixed-duration cues so
// frame-sampled captions flow through the same merge path as subtitle cues.
package cues
