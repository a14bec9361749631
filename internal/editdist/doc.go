// Package editdist computes character-level Levenshtein distance and its
// length-normalized form over Unicode code points. The DP keeps two rolling
// rows, bounding memory to the shorter operand's length.
package editdist
