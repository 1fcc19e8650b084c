// Package gui renders the benchmark in a raylib window.
//
// [Window] implements sim.Renderer: bodies are drawn in world units inside
// a 2D camera bracket mirroring camera.Camera, and the HUD is drawn in
// screen space on top.
//
// # Key Bindings
//
//	Arrows / WASD - pan
//	Q / E / wheel - zoom out / in
//	R             - reset view
//	Esc           - quit
package gui
