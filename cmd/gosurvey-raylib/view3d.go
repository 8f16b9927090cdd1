package main

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosurvey/internal/measurement"
	"github.com/philipparndt/gosurvey/pkg/geometry"
	"github.com/philipparndt/gosurvey/pkg/viewer"
)

// orbitCamera circles a target point. E maps to X, H to Y and N to -Z so
// that north points away from the default view.
type orbitCamera struct {
	camera        rl.Camera3D
	target        rl.Vector3
	distance      float32
	angleX        float32
	angleY        float32
	size          float32
	defaultTarget rl.Vector3
	defaultDist   float32
}

func worldPos(p geometry.Point) rl.Vector3 {
	return rl.Vector3{X: float32(p.E), Y: float32(p.H), Z: float32(-p.N)}
}

func newOrbitCamera(pts []geometry.Point) orbitCamera {
	var minV, maxV rl.Vector3
	for i, p := range pts {
		v := worldPos(p)
		if i == 0 {
			minV, maxV = v, v
			continue
		}
		minV = rl.Vector3Min(minV, v)
		maxV = rl.Vector3Max(maxV, v)
	}
	center := rl.Vector3Scale(rl.Vector3Add(minV, maxV), 0.5)
	size := rl.Vector3Length(rl.Vector3Subtract(maxV, minV))
	if size == 0 {
		size = 10
	}

	o := orbitCamera{
		target:        center,
		distance:      size * 1.5,
		angleX:        0.6,
		angleY:        0.3,
		size:          size,
		defaultTarget: center,
		defaultDist:   size * 1.5,
	}
	o.camera = rl.Camera3D{
		Target:     center,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
	o.update()
	return o
}

func (o *orbitCamera) reset() {
	o.target = o.defaultTarget
	o.distance = o.defaultDist
	o.angleX = 0.6
	o.angleY = 0.3
}

// handleInput rotates on drag and zooms on the wheel
func (o *orbitCamera) handleInput(moved *bool) {
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			*moved = true
			o.angleY += delta.X * 0.01
			o.angleX += delta.Y * 0.01
			if o.angleX > 1.5 {
				o.angleX = 1.5
			}
			if o.angleX < -1.5 {
				o.angleX = -1.5
			}
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		o.distance *= 1.0 - wheel*0.03
		if o.distance < o.size*0.05 {
			o.distance = o.size * 0.05
		}
	}
}

// update places the camera on its sphere around the target
func (o *orbitCamera) update() {
	x := o.distance * float32(math.Cos(float64(o.angleX))) * float32(math.Sin(float64(o.angleY)))
	y := o.distance * float32(math.Sin(float64(o.angleX)))
	z := o.distance * float32(math.Cos(float64(o.angleX))) * float32(math.Cos(float64(o.angleY)))

	o.camera.Position = rl.Vector3{X: o.target.X + x, Y: o.target.Y + y, Z: o.target.Z + z}
	o.camera.Target = o.target
}

// draw3D shows points at their heights with annotations as 3D lines. Labels
// are projected back into screen space.
func (a *App) draw3D() {
	pts := a.session.Points()
	annotations := a.session.Annotations()
	selected := make(map[int]bool)
	for _, i := range a.session.Selection() {
		selected[i] = true
	}
	radius := a.orbit.size * 0.006

	rl.BeginMode3D(a.orbit.camera)
	rl.DrawGrid(20, a.orbit.size/10)

	for _, an := range annotations {
		refs := an.Refs()
		role := viewer.RoleSegment
		if an.Kind == measurement.KindAngle {
			role = viewer.RoleAngle
		}
		col := colorOf(a.theme, role, false)
		for i := 1; i < len(refs); i++ {
			rl.DrawLine3D(worldPos(pts[refs[i-1]]), worldPos(pts[refs[i]]), col)
		}
	}

	for i, p := range pts {
		pos := worldPos(p)
		role := viewer.RolePoint
		r := radius
		if selected[i] {
			role = viewer.RoleSelected
			r *= 1.6
		}
		rl.DrawSphere(pos, r, colorOf(a.theme, role, false))
		if p.HasH {
			foot := rl.Vector3{X: pos.X, Y: 0, Z: pos.Z}
			rl.DrawLine3D(foot, pos, rl.NewColor(120, 120, 120, 160))
		}
	}
	if a.hovered >= 0 {
		rl.DrawSphere(worldPos(pts[a.hovered]), radius*2, rl.NewColor(255, 255, 0, 150))
	}
	rl.EndMode3D()

	for i, p := range pts {
		s := rl.GetWorldToScreen(worldPos(p), a.orbit.camera)
		a.drawLabel(viewer.Command{Kind: viewer.KindText, At: viewer.Pos{X: float64(s.X) + 8, Y: float64(s.Y) - 8}, Text: p.ID}, colorOf(a.theme, roleFor(selected[i]), false))
	}

	ms, err := a.session.Measurements()
	if err != nil {
		return
	}
	for _, m := range ms {
		var at rl.Vector3
		if m.Annotation.Kind == measurement.KindAngle {
			at = worldPos(m.Points[1])
		} else {
			at = rl.Vector3Scale(rl.Vector3Add(worldPos(m.Points[0]), worldPos(m.Points[1])), 0.5)
		}
		s := rl.GetWorldToScreen(at, a.orbit.camera)
		text := m.Label()
		if m.Segment != nil && m.Segment.HasHeight {
			text = measurement.SegmentLabel(*m.Segment) + ", " + slopeLabel(*m.Segment)
		}
		a.drawLabel(viewer.Command{Kind: viewer.KindText, At: viewer.Pos{X: float64(s.X), Y: float64(s.Y)}, Text: text, Anchor: viewer.AnchorMiddle, Boxed: true}, colorOf(a.theme, viewer.RoleLabel, false))
	}
}

func roleFor(selected bool) viewer.Role {
	if selected {
		return viewer.RoleSelected
	}
	return viewer.RolePoint
}

func slopeLabel(s measurement.SegmentMeasurement) string {
	return fmt.Sprintf("ΔH=%.3f, S=%.3f, %.2f°", s.DeltaH, s.SlopeDistance, s.Elevation)
}
