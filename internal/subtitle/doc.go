// Package subtitle models timed subtitle segments and the SRT on-disk format.
//
// A Set is an ordered, immutable sequence of Segments. Parsing and
// serialization round-trip: serializing a parsed Set and parsing it again
// yields the same timings and text, with indices renumbered from 1.
// MergeBilingual combines an original Set with its translation into
// dual-line cues without touching timings.
package subtitle
