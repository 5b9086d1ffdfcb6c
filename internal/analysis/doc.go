// Package analysis ties the numeric core together for callers.
//
// A [Request] carries raw coefficient lists and sweep settings; [Run] turns
// it into polynomials and produces a [Result] with both outputs the
// presentation layer needs:
//
//   - the frequency response (magnitude in dB, phase in degrees)
//   - the stability verdict with the denominator roots
//
// The two computations are independent; a denominator whose roots cannot be
// found fails the whole request so no partial result reaches the caller.
//
// # Batches
//
// [RunBatch] evaluates independent requests concurrently. [LoadScenario]
// reads a YAML file of transfer functions written as free text:
//
//	name: filters
//	systems:
//	  - name: low_pass
//	    numerator: "1"
//	    denominator: "1 1"
//	  - name: resonant
//	    numerator: "1"
//	    denominator: "1 0.1 1"
//	    unwrap: true
package analysis
