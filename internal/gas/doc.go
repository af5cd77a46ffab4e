// Package gas implements a 2D hard-disk gas in a rectangular box: elastic
// equal-mass pair collisions, wall reflections, and a pressure estimate
// accumulated from wall-impact impulses.
//
// The collision pass is a naive O(n²) scan over unordered pairs, which is
// fine at teaching-scale particle counts. Wall tests are plain distance
// thresholds, not swept checks; a fast particle can tunnel at large dt.
package gas
