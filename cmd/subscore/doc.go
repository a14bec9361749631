// Command subscore scores candidate transcripts of an episode against the
// authoritative script and reports corpus- and line-level accuracy, plus
// cross-source agreement between non-authoritative transcripts.
package main
