// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow when
// narrowing the fixed-width counts read from a file header or body length to
// Go's platform-dependent int, and when narrowing positions back to the
// fixed-width types of the on-disk layout.
//
// For conversions that are provably safe by domain constraints (e.g. a label
// index below MaxLabels), use direct type casts instead.
package conv
