// Package analysis provides post-run diagnostics: power spectra of
// recorded trajectories, speed-distribution histograms for gas runs, and
// ASCII phase portraits for ODE systems.
package analysis
