// Package score derives corpus- and line-level accuracy reports from
// alignment results, and computes corpus-level agreement between two
// non-authoritative sources. Reports are plain serializable records meant
// for JSON emission; derived metrics are rounded to three decimals so
// serialized reports stay stable across runs.
package score
