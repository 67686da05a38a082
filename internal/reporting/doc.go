// Package reporting writes the artifacts of a selection run: the chosen
// isolate list, the quota error log, the ranked dataset, a terminal summary
// and a JUnit view of quota outcomes.
package reporting
