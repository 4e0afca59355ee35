// Package compression implements the run-length encoding used for bitmap
// bodies.
//
// Bitmaps for small monochrome displays are dominated by long stretches of
// identical bytes: fully black or fully white rows, and the zero padding that
// aligns each row to 32 bits. A very simple byte-wise scheme captures nearly
// all of that redundancy while staying trivial to expand on a device with a
// few kilobytes of RAM.
//
// The stream is a sequence of two-byte records, a repeat count followed by
// the byte value:
//
//	AAAAABCC
//	05 A 01 B 02 C
//
// Counts are unsigned bytes, so a run can cover at most 255 bytes. Longer runs
// are split into as many full 255-byte records as needed plus one closing
// record. A run of 300 "X" is therefore stored as `255 X 45 X`.
//
// Records carry no terminator and the stream doesn't store its own decoded
// size. The reader must be told how many bytes to produce; for bitmaps that is
// always the row size times the number of rows. If the last record would
// produce more bytes than requested, the excess is discarded.
package compression
