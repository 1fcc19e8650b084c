// Package viz presents benchmark runs in the terminal.
//
//   - [Headless]: a sim.Renderer with a frame budget and no output
//   - [Recorder]: a sim.Observer collecting per-frame series
//   - [Report] and [Compare]: lipgloss summaries with asciigraph plots
//   - [Model]: a Bubble Tea program stepping a headless loop live
//
// # Key Bindings
//
//	Arrows / WASD - pan
//	e / x         - zoom in / out
//	r             - reset view
//	q / ctrl+c    - quit
package viz
