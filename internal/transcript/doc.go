// Package transcript defines the value types shared by every comparison
// component: authoritative script lines, time-stamped candidate lines, and
// the source bundles the CLI hands to the aligner and scorer.
//
// All types here are plain data constructed once per comparison run and never
// mutated. Script order is the authored scene-then-line order and is the
// authoritative sequence during alignment; candidate lines are ordered by
// start time, which their producer guarantees.
package transcript
