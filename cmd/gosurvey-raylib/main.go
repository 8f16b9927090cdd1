package main

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosurvey/internal/app"
	"github.com/philipparndt/gosurvey/internal/measurement"
	"github.com/philipparndt/gosurvey/pkg/analysis"
	"github.com/philipparndt/gosurvey/pkg/viewer"
	"github.com/philipparndt/gosurvey/pkg/watcher"
	"golang.org/x/image/font/gofont/goregular"
)

// App is the raylib front end. All session access happens on the main
// thread; the file watcher only raises needsReload.
type App struct {
	session     *app.Session
	theme       viewer.Theme
	font        rl.Font
	view3D      bool
	orbit       orbitCamera
	hovered     int
	status      string
	needsReload atomic.Bool
	mouseDown   rl.Vector2
	mouseMoved  bool
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: gosurvey-raylib <points-file>")
		os.Exit(1)
	}

	session, err := app.Open(os.Args[1], app.DefaultOptions())
	if err != nil {
		fmt.Printf("Error loading points: %v\n", err)
		os.Exit(1)
	}

	a := &App{
		session: session,
		theme:   viewer.DarkTheme(),
		hovered: -1,
		status:  fmt.Sprintf("Loaded %d points", len(session.Points())),
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce)
	if err != nil {
		log.Printf("Auto-reload not available: %v", err)
	} else {
		defer fw.Close()
		if err := fw.Watch(session.Source(), func(string) { a.needsReload.Store(true) }); err != nil {
			log.Printf("Auto-reload not available: %v", err)
		} else {
			fw.Start()
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1400, 900, "GoSurvey - "+session.Name())
	rl.SetTargetFPS(60)

	charsToLoad := []rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!@#$%^&*()_+-=[]{}|;:',.<>?/\\`~ °±Δ²³")
	a.font = rl.LoadFontFromMemory(".ttf", goregular.TTF, 64, charsToLoad)
	rl.SetTextureFilter(a.font.Texture, rl.FilterBilinear)

	a.orbit = newOrbitCamera(session.Points())

	for !rl.WindowShouldClose() {
		if a.needsReload.CompareAndSwap(true, false) {
			a.reload()
		}

		a.handleInput()

		rl.BeginDrawing()
		rl.ClearBackground(colorOf(a.theme, viewer.RolePoint, true))

		if a.view3D {
			a.orbit.update()
			a.draw3D()
		} else {
			a.draw2D()
		}
		a.drawUI()

		rl.EndDrawing()
	}

	rl.UnloadFont(a.font)
	rl.CloseWindow()
}

func (a *App) reload() {
	dropped, err := a.session.Reload()
	if err != nil {
		a.status = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	a.status = fmt.Sprintf("Reloaded %d points", len(a.session.Points()))
	if dropped > 0 {
		a.status += fmt.Sprintf(", %d annotation(s) dropped", dropped)
	}
	a.hovered = -1
}

// handleInput processes keyboard and mouse input
func (a *App) handleInput() {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.mouseDown = rl.GetMousePosition()
		a.mouseMoved = false
	}

	if a.view3D {
		a.orbit.handleInput(&a.mouseMoved)
	}

	a.hovered = a.pointAt(rl.GetMousePosition())

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if !a.mouseMoved && rl.Vector2Distance(a.mouseDown, rl.GetMousePosition()) < 5 {
			a.pick()
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyS):
		a.session.SetTool(measurement.ToolSegment)
		a.status = "Tool: segment"
	case rl.IsKeyPressed(rl.KeyA):
		a.session.SetTool(measurement.ToolAngle)
		a.status = "Tool: angle (second pick is the vertex)"
	case rl.IsKeyPressed(rl.KeyU), rl.IsKeyPressed(rl.KeyZ) && ctrlDown():
		if an, ok := a.session.Undo(); ok {
			a.status = fmt.Sprintf("Undid %s", an)
		}
	case rl.IsKeyPressed(rl.KeyC):
		a.session.CancelSelection()
	case rl.IsKeyPressed(rl.KeyDelete), rl.IsKeyPressed(rl.KeyBackspace):
		if a.hovered >= 0 {
			if p, err := a.session.DeletePoint(a.hovered); err == nil {
				a.status = fmt.Sprintf("Deleted %s", p.ID)
			}
			a.hovered = -1
		}
	case rl.IsKeyPressed(rl.KeyV):
		a.view3D = !a.view3D
	case rl.IsKeyPressed(rl.KeyB):
		opts := a.session.Options()
		opts.ShowBestFit = !opts.ShowBestFit
		a.session.SetOptions(opts)
	case rl.IsKeyPressed(rl.KeyJ):
		opts := a.session.Options()
		opts.ShowAdjusted = !opts.ShowAdjusted
		a.session.SetOptions(opts)
	case rl.IsKeyPressed(rl.KeyR):
		a.orbit.reset()
	}
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
}

// pointAt returns the point under the mouse, or -1
func (a *App) pointAt(mouse rl.Vector2) int {
	pts := a.session.Points()
	positions := make([]viewer.Pos, len(pts))
	if a.view3D {
		for i, p := range pts {
			s := rl.GetWorldToScreen(worldPos(p), a.orbit.camera)
			positions[i] = viewer.Pos{X: float64(s.X), Y: float64(s.Y)}
		}
	} else {
		m := a.session.Mapper(screenSize())
		for i, p := range pts {
			positions[i] = m.ToScreen(p.EN())
		}
	}
	return viewer.NearestPoint(viewer.Pos{X: float64(mouse.X), Y: float64(mouse.Y)}, positions, a.session.Options().PickTolerance)
}

func (a *App) pick() {
	res, err := a.session.Pick(a.hovered)
	if err != nil {
		a.status = err.Error()
		return
	}
	if !res.Completed {
		a.status = res.State.String()
		return
	}
	ms, err := a.session.Measurements()
	if err != nil || len(ms) == 0 {
		return
	}
	last := ms[len(ms)-1]
	a.status = last.Label()
	fmt.Print(measurement.Describe(last))
}

func screenSize() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// drawUI draws the info panel and the controls
func (a *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	text := func(s string, size float32, c rl.Color) {
		rl.DrawTextEx(a.font, s, rl.Vector2{X: 10, Y: y}, size, 1, c)
		y += lineHeight
	}

	pts := a.session.Points()
	text(fmt.Sprintf("Points: %s (%d)", a.session.Name(), len(pts)), 16, rl.White)
	text(fmt.Sprintf("Tool: %s  [%s]", a.session.Tool(), a.session.State()), 16, rl.White)
	y += lineHeight / 2

	report := a.session.Report()
	if adj := report.Estimate.Adjusted; adj != nil {
		text(fmt.Sprintf("Adjusted: %s r=%.3f (%d triples)", analysis.FormatVector(adj.Center), report.AdjustedRadius, adj.TripleCount), 16, colorOf(a.theme, viewer.RoleAdjusted, false))
	} else {
		text(fmt.Sprintf("Adjusted: %v", report.Estimate.AdjustedErr), 16, rl.Gray)
	}
	if bf := report.Estimate.BestFit; bf != nil {
		text(fmt.Sprintf("Best-fit: %s r=%.3f rms=%.4f", analysis.FormatVector(bf.Center), bf.Radius, report.BestFitResiduals.RMS), 16, colorOf(a.theme, viewer.RoleBestFit, false))
	} else {
		text(fmt.Sprintf("Best-fit: %v", report.Estimate.BestFitErr), 16, rl.Gray)
	}
	if report.HasBoth {
		text(fmt.Sprintf("Center offset: %.4f", report.CenterOffset), 16, rl.LightGray)
	}

	y += lineHeight
	text("Controls:", 16, rl.Yellow)
	for _, c := range []string{
		"  Click: Pick point",
		"  S / A: Segment / angle tool",
		"  U or Ctrl+Z: Undo",
		"  Del: Delete hovered point",
		"  C: Cancel selection",
		"  B / J: Toggle best-fit / adjusted",
		"  V: Toggle 3D view (drag rotates, wheel zooms, R resets)",
	} {
		text(c, 14, rl.LightGray)
	}

	rl.DrawTextEx(a.font, a.status, rl.Vector2{X: 10, Y: float32(rl.GetScreenHeight()) - 30}, 18, 1, rl.Lime)
}
