// Package viz turns planets runs into artifacts a person can look at.
//
//   - [Recorder]: collects presented frames and encodes an animated GIF
//   - [SavePNG]: writes a single frame
//   - [Summarize] and [Report]: population statistics with asciigraph
//     histograms, styled with lipgloss
//   - [Canvas]: a Braille map of body positions for the terminal
package viz
