// Package harness executes lessons deterministically and checks their
// transcripts.
//
// # The deterministic example convention
//
// Every lesson run is hermetic: the runner captures the transcript from a
// fresh buffer, the lesson joins every goroutine it started before
// returning, and each run gets its own trace with sequence numbers
// restarting at 1. Nothing is shared between runs.
//
// Concurrent lessons cannot promise a total line order, so the lesson
// manifest carries masking directives instead of pretending they can:
//
//   - masks rewrite nondeterministic tokens (runtime goroutine counts) to
//     fixed placeholders;
//   - sort_prefixes sort contiguous runs of lines whose internal order is
//     scheduler-chosen, while pinned lines around them stay pinned;
//   - unordered sorts a whole transcript whose interleaving is free.
//
// Normalization additionally folds CRLF, trims trailing whitespace, and
// applies Unicode NFC, so platform layout differences never fail a
// comparison. The normalized transcript is what golden files store and
// what the verify command compares across back-to-back runs.
//
// Declarative checks (transcript_contains, transcript_order,
// transcript_count) run against the recorded trace and express the
// guarantees that survive masking, such as a consumer seeing items in
// emission order or a cancellation line appearing exactly once.
package harness
