package campus

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/round"
)

// Render draws the HUD, the map, the game log and any overlay box.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	g.renderMap(dst)
	g.renderLog(dst)
	g.renderHelp(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the title, the score line and the question.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColor(1, 0, "CAMPUS GUESSER", core.ColorBrightCyan)
	if g.catalog.Name != "" {
		dst.DrawTextColor(16, 0, "· "+g.catalog.Name, core.ColorGray)
	}

	best := fmt.Sprintf("Best %d", g.highScore)
	right := dst.Width() - 1
	dst.DrawTextRight(right, 0, best, core.ColorYellow)
	right -= len(best) + 2

	if g.state == StatePlaying || g.state == StateClosing {
		remaining := g.engine.Remaining()
		timeColor := core.ColorBrightWhite
		if remaining <= 10 {
			timeColor = core.ColorBrightRed
		}
		clock := "Time " + formatClock(remaining)
		dst.DrawTextRight(right, 0, clock, timeColor)
		right -= len(clock) + 2

		status := fmt.Sprintf("Round %d/%d  Correct %d  Points %d",
			g.engine.RoundNumber(), g.engine.SessionLength(), g.engine.CorrectCount(), g.engine.Points())
		if right-len(status) > 24 {
			dst.DrawTextRight(right, 0, status, core.ColorWhite)
		}
	}

	var line string
	color := core.ColorBrightYellow
	switch g.state {
	case StateReady:
		line = "Press Enter to start"
		color = core.ColorWhite
	case StatePlaying, StateClosing:
		line = round.Prompt(g.engine.TargetName())
	case StateOver:
		line = g.summary.Reason.Headline()
	case StateError:
		line = "Cannot start"
		color = core.ColorBrightRed
	}
	dst.DrawTextColor(1, 1, line, color)
}

// renderMap draws the building footprints, the answer overlay and the
// crosshair.
func (g *Game) renderMap(dst *core.Screen) {
	dst.DrawBoxColor(g.mapFrame, core.ColorDarkGray)

	area := g.proj.Area()
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if g.grid.At(core.Point{X: x, Y: y}) >= 0 {
				dst.SetColor(x, y, BuildingChar, core.ColorGray)
			}
		}
	}

	g.surface.Paint(dst)

	if g.state == StatePlaying || g.state == StateReady {
		dst.SetColor(g.cursor.X, g.cursor.Y, CrosshairChar, core.ColorBrightYellow)
	}
}

// renderLog draws the newest game log entries that fit the sidebar.
func (g *Game) renderLog(dst *core.Screen) {
	frame := g.sideFrame
	dst.DrawBoxColor(frame, core.ColorDarkGray)
	dst.DrawTextColor(frame.X+2, frame.Y, " Game Log ", core.ColorCyan)

	inner := frame.Inset(1)
	var lines []feedLine
	for _, l := range g.feed {
		for _, w := range wrap(l.text, inner.W-1) {
			lines = append(lines, feedLine{text: w, color: l.color})
		}
	}
	if len(lines) > inner.H {
		lines = lines[len(lines)-inner.H:]
	}
	for i, l := range lines {
		dst.DrawTextColor(inner.X+1, inner.Y+i, l.text, l.color)
	}
}

// renderHelp draws the key hints for the current state.
func (g *Game) renderHelp(dst *core.Screen) {
	var help string
	switch g.state {
	case StateReady:
		help = "Arrows move  Enter start  Q menu"
	case StatePlaying:
		help = "Arrows move  Shift fast  Space guess  Enter next  X quit game"
	case StateClosing:
		help = "..."
	case StateOver, StateError:
		help = "Enter/R play again  Q menu"
	}
	dst.DrawTextColor(1, dst.Height()-1, help, core.ColorDarkGray)
}

// renderOverlay draws the end-of-session boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateOver:
		lines := []string{
			g.summary.Line(),
			fmt.Sprintf("%d of %d correct, %d points", g.summary.Score.CorrectCount, g.summary.SessionLength, g.summary.Score.Points),
		}
		if g.newBest {
			lines = append(lines, "New high score!")
		} else {
			lines = append(lines, fmt.Sprintf("Best: %d", g.highScore))
		}
		lines = append(lines, "Press Enter or R to play again")
		g.drawCenteredBox(dst, g.summary.Reason.Headline(), lines)

	case StateError:
		lines := wrap(g.err.Error(), g.mapFrame.W-8)
		lines = append(lines, "", "Check the config and catalog files.")
		g.drawCenteredBox(dst, "Cannot start", lines)
	}
}

// drawCenteredBox draws a message box centered on the map.
func (g *Game) drawCenteredBox(dst *core.Screen, title string, lines []string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	center := g.mapFrame.Center()
	box := core.NewRect(center.X-boxW/2, center.Y-boxH/2, boxW, boxH)

	// Draw box background
	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	dst.DrawBoxColor(box, core.ColorBrightWhite)

	// Draw text
	titleX := box.X + (boxW-len([]rune(title)))/2
	dst.DrawTextColor(titleX, box.Y+1, title, core.ColorBrightYellow)
	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+3+i, l)
	}
}

// formatClock renders seconds as m:ss.
func formatClock(seconds int) string {
	seconds = core.Max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// wrap splits text into lines of at most width runes, breaking on spaces.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			lines = append(lines, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 || len(lines) == 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
