package analysis

import (
	"strings"

	"github.com/sansuarezs055/gaslab/internal/dynamo"
)

// PhasePortrait2D holds a projected phase-space trajectory.
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []struct{ X, Y float64 }
}

// PhasePortraitFromStates projects recorded states onto two components.
func PhasePortraitFromStates(states []dynamo.State, xIdx, yIdx int) *PhasePortrait2D {
	if len(states) == 0 || xIdx >= len(states[0]) || yIdx >= len(states[0]) {
		return nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]struct{ X, Y float64 }, 0, len(states)),
	}
	for _, s := range states {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: s[xIdx], Y: s[yIdx]})
	}
	return portrait
}

// GeneratePhasePortrait integrates a system and records the projected
// trajectory directly, without keeping the full state history.
func GeneratePhasePortrait(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	xIdx, yIdx int,
	dt, duration float64,
) *PhasePortrait2D {
	if xIdx >= len(x0) || yIdx >= len(x0) {
		return nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]struct{ X, Y float64 }, 0, int(duration/dt)),
	}

	x := x0.Clone()
	t := 0.0
	for t < duration {
		x = integ.Step(dyn, x, t, dt)
		t += dt
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: x[xIdx], Y: x[yIdx]})
	}
	return portrait
}

// PhasePortraitToASCII renders the portrait onto a character grid with
// axis lines when the origin is in view.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
