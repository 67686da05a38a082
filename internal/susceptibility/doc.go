// Package susceptibility interprets raw antimicrobial susceptibility report
// cells ("R >32", "S <=0.25", "Missing BP >=8", "nip") into typed results,
// clamps MICs to the reportable range of the testing kit, derives D-test
// outcomes and reconciles results reported by several regional datasets.
//
// Everything in this package is a pure function of its inputs and lookup
// tables.
package susceptibility
