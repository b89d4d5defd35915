// Package tui renders a puzzle in the terminal with bubbletea. Digits add
// shapes, arrows pick a figure, +/- resize it and t starts a new round.
package tui
