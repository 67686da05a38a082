// Package selection chooses the isolate panel from a ranked pool.
//
// Selection runs per pathogen group, in market priority order:
//
//  1. species fill takes the top-ranked isolates of every subspecies;
//  2. bugdrug fill adds isolates with an interesting result for each
//     antibiotic until the per-antibiotic quota is met;
//  3. group fill tops the group up to its overall target;
//
// and finally upper fill tops the whole panel up to an upper bound.
//
// Every phase is a function from State to State. The pool is pre-sorted, so
// taking a prefix of any filtered view of it always prefers the highest
// scores. An active lower limit caps the total number of chosen isolates;
// overshooting it truncates the panel and halts all later phases.
package selection
