// Package tables loads the lookup tables that accompany a lab dataset: the
// reportable MIC ranges of each kit software version, the antibiotic
// abbreviation table, and the market priority table that orders pathogen
// groups.
//
// The files are JSON in the field but are read with a YAML decoder, so YAML
// versions of the same documents work too. Key order is significant for the
// abbreviation and market tables and is preserved by decoding through
// yaml.Node.
package tables
