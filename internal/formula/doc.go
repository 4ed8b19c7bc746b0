// Package formula holds the pure numeric calculations behind the calculators:
// one-rep-max estimators, the Wilks score, training volume, compound dosage,
// macro/calorie estimation and the RIR/RPE lookup.
//
// Nothing here does I/O or returns errors. Callers validate input first; on
// edge values the functions return a documented sentinel instead of panicking.
// Results are not rounded, rounding is a presentation concern (see Round).
package formula
