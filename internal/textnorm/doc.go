// Package textnorm canonicalizes dialogue text before edit-distance
// comparison. It strips whitespace and the punctuation marks Japanese
// dialogue conventions use for pacing, so that segmentation and styling
// differences between transcript sources do not count as errors.
package textnorm
