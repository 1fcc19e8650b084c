package gui

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/cullbench/internal/bench"
	"github.com/san-kum/cullbench/internal/camera"
	"github.com/san-kum/cullbench/internal/config"
	"github.com/san-kum/cullbench/internal/sim"
)

var (
	ColBg      = rl.RayWhite
	ColText    = rl.DarkGray
	ColTextDim = rl.Gray
)

const (
	panSpeed  = 10.0 // screen pixels per frame
	keyZoom   = 0.02
	wheelZoom = 0.1
)

// Window is the raylib-backed sim.Renderer. Only one may exist per process.
type Window struct {
	cam    rl.Camera2D
	closed bool
}

// Open creates the window and sets frame pacing to the scenario's rate.
func Open(cfg config.Scenario) (*Window, error) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	if !rl.IsWindowReady() {
		return nil, errors.New("raylib: window not ready")
	}
	rl.SetTargetFPS(int32(cfg.Screen.FPS))
	rl.SetExitKey(rl.KeyEscape)
	return &Window{}, nil
}

func (w *Window) ShouldClose() bool { return w.closed || rl.WindowShouldClose() }

func (w *Window) ScreenSize() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (w *Window) Input() sim.Input {
	var in sim.Input

	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		in.Pan.X += panSpeed
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		in.Pan.X -= panSpeed
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		in.Pan.Y += panSpeed
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		in.Pan.Y -= panSpeed
	}

	if rl.IsKeyDown(rl.KeyE) {
		in.Zoom += keyZoom
	}
	if rl.IsKeyDown(rl.KeyQ) {
		in.Zoom -= keyZoom
	}
	in.Zoom += float64(rl.GetMouseWheelMove()) * wheelZoom

	in.ResetView = rl.IsKeyPressed(rl.KeyR)
	return in
}

func (w *Window) BeginFrame() error {
	if w.closed || !rl.IsWindowReady() {
		return errors.New("raylib: window not ready")
	}
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	return nil
}

func (w *Window) BeginCamera(cam camera.Camera) {
	w.cam = toCamera2D(cam)
	rl.BeginMode2D(w.cam)
}

func (w *Window) DrawCircle(center bench.Vec2, radius float64, color bench.Color) {
	rl.DrawCircleV(vec(center), float32(radius), rl.NewColor(color.R, color.G, color.B, color.A))
}

func (w *Window) EndCamera() { rl.EndMode2D() }

func (w *Window) DrawHUD(hud sim.HUD) {
	drawText(fmt.Sprintf("Number of balls: %d (%d visible, %s)", hud.Bodies, hud.Visible, hud.Engine), 10, 10, 20, ColText)
	drawText(fmt.Sprintf("Physics Time: %.2f ms", hud.PhysicsMillis), 10, 40, 20, ColText)
	drawText(fmt.Sprintf("Render Time: %.2f ms", hud.RenderAvg), 10, 70, 20, ColText)
	drawText(fmt.Sprintf("Average Physics Time: %.2f ms", hud.PhysicsAvg), 10, 100, 20, ColText)
	rl.DrawFPS(10, 130)

	cursor := w.ScreenToWorld(rl.GetMousePosition())
	drawText(fmt.Sprintf("zoom %.1f px/m  cursor (%.2f, %.2f) m", hud.Zoom, cursor.X, cursor.Y), 10, 160, 16, ColTextDim)
	_, h := w.ScreenSize()
	drawText(hud.Hints, 10, int(h)-24, 14, ColTextDim)
}

func (w *Window) EndFrame() error {
	rl.EndDrawing()
	return nil
}

// ScreenToWorld maps a screen point through the camera of the current frame
// using raylib's own transform.
func (w *Window) ScreenToWorld(p rl.Vector2) bench.Vec2 {
	v := rl.GetScreenToWorld2D(p, w.cam)
	return bench.V(float64(v.X), float64(v.Y))
}

func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	rl.CloseWindow()
	return nil
}

func toCamera2D(c camera.Camera) rl.Camera2D {
	return rl.NewCamera2D(vec(c.Offset), vec(c.Target), float32(c.Rotation), float32(c.Zoom))
}

func vec(v bench.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}
