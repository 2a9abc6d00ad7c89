// Package testutil provides seeded random data for tests and benchmarks.
//
//	rng := testutil.NewRNG(4711)
//	img := rng.Image(28 * 28)        // random pixel bytes
//	vocab := rng.Vocabulary(10)      // distinct label names
//	label := rng.Label(len(vocab))   // index into vocab
//
// The package does not depend on jdx so that jdx's own tests can use it.
package testutil
