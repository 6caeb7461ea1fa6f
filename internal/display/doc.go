// Package display renders the notice channel and the two display regions on
// a terminal.
//
// A Terminal serializes every write behind one mutex so that notices and
// region redraws from concurrent goroutines never interleave. Regions are
// overwritten wholesale and only redrawn when their content changes.
package display
