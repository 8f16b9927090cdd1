package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosurvey/pkg/viewer"
)

const labelPadding = 4

func colorOf(theme viewer.Theme, role viewer.Role, background bool) rl.Color {
	c := theme.Color(role)
	if background {
		c = theme.Background
	}
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

func vec(p viewer.Pos) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

// draw2D renders the plan view from the session draw list
func (a *App) draw2D() {
	w, h := screenSize()
	cmds := a.session.Render(w, h, a.theme)
	for _, c := range cmds {
		a.drawCommand(c)
	}

	if a.hovered >= 0 {
		m := a.session.Mapper(w, h)
		p := a.session.Points()[a.hovered]
		rl.DrawCircleLinesV(vec(m.ToScreen(p.EN())), float32(a.theme.MarkerRadius*3), rl.NewColor(255, 255, 0, 180))
	}
}

func (a *App) drawCommand(c viewer.Command) {
	col := colorOf(a.theme, c.Role, false)
	thick := float32(a.theme.LineWidth)

	switch c.Kind {
	case viewer.KindMarker:
		rl.DrawCircleV(vec(c.Center), float32(c.Radius), col)
	case viewer.KindLine:
		rl.DrawLineEx(vec(c.From), vec(c.To), thick, col)
	case viewer.KindCircle:
		drawPolyline(viewer.ArcPoints(c.Center, c.Radius, 0, 2*math.Pi, 180), c.Dashed, thick, col)
	case viewer.KindArc:
		drawPolyline(viewer.ArcPoints(c.Center, c.Radius, c.Start, c.Sweep, 48), c.Dashed, thick, col)
	case viewer.KindText:
		a.drawLabel(c, col)
	}
}

func drawPolyline(pts []viewer.Pos, dashed bool, thick float32, col rl.Color) {
	for i := 1; i < len(pts); i++ {
		if dashed && i%2 == 0 {
			continue
		}
		rl.DrawLineEx(vec(pts[i-1]), vec(pts[i]), thick, col)
	}
}

// drawLabel renders text, with a bordered background box for measurement
// labels
func (a *App) drawLabel(c viewer.Command, col rl.Color) {
	if c.Text == "" {
		return
	}
	fontSize := float32(a.theme.FontSize + 2)
	size := rl.MeasureTextEx(a.font, c.Text, fontSize, 1)

	pos := rl.Vector2{X: float32(c.At.X), Y: float32(c.At.Y) - size.Y/2}
	if c.Anchor == viewer.AnchorMiddle {
		pos.X -= size.X / 2
	}

	if c.Boxed {
		rect := rl.Rectangle{
			X:      pos.X - labelPadding,
			Y:      pos.Y - labelPadding,
			Width:  size.X + 2*labelPadding,
			Height: size.Y + 2*labelPadding,
		}
		rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
		rl.DrawRectangleLinesEx(rect, 1.5, col)
	}
	rl.DrawTextEx(a.font, c.Text, pos, fontSize, 1, col)
}
