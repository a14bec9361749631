// Package sources loads the file formats the comparison pipeline consumes:
// scene-ordered script JSON, SRT subtitle cues, whisper segment JSON, and
// OCR frame JSON. Loaders validate shape at this boundary and hand plain
// value types to the core packages, which never touch files themselves.
package sources
