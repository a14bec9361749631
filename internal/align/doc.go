// Package align assigns each script line the best-matching contiguous run of
// candidate transcript lines by normalized edit distance. The search is
// greedy and deterministic: script lines are processed in authored order,
// windows of one to five candidate lines are tried smallest-first across the
// whole candidate list, and a candidate consumed by one script line is never
// reused by a later one.
//
// By default a later script line may match an earlier unused window purely by
// text similarity, even when that contradicts temporal plausibility. That
// trades temporal alignment for scoring precision; setting
// AllowNonSequentialMatch to false selects the monotonic variant.
package align
