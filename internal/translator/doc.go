// Package translator turns a subtitle set into its translation through a
// pluggable Backend, preserving segment identity and timing exactly.
//
// The input set is partitioned into contiguous batches. A failed batch is
// split in half and each half retried independently, recursing until the
// failure is isolated to a single segment. Terminal-failure policy: a
// segment that still fails at batch size one keeps its original text in
// the output and its index is reported in Summary.Failed; a single
// untranslatable segment never aborts the job.
//
// Only segment IDs and text travel to the backend. Timings stay local and
// cannot be corrupted by a misbehaving model.
package translator
