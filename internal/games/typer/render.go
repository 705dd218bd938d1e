package typer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/round"
	"github.com/vovakirdan/constellation/internal/words"
)

const (
	minWidth  = 40
	minHeight = 14

	panelMinWidth = 24
	panelPadding  = 8 // Blank columns around the word inside the frame

	title = "✦ CONSTELLATION ✦"
)

// streakNames label the streak badge per tier; deeper tiers reuse the last name.
var streakNames = []string{"STREAK", "HOT STREAK", "SUPERNOVA"}

var streakColors = []core.Color{core.ColorYellow, core.ColorOrange, core.ColorBrightMagenta}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()

	// Check screen size
	if g.screenW < minWidth || g.screenH < minHeight {
		g.renderTooSmall(dst)
		return
	}

	dst.DrawTextCentered(0, title, core.ColorBrightCyan)
	if g.settings.PackTitle != "" {
		dst.DrawTextCentered(1, g.settings.PackTitle, core.ColorGray)
	}

	s := g.engine.Snapshot()
	switch {
	case s.IsActive:
		g.renderRound(dst, s)
	case g.lastRound != nil:
		g.renderResults(dst, s, *g.lastRound)
	default:
		g.renderTitleScreen(dst, s)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minWidth, minHeight), core.ColorGray)
}

// renderRound draws the HUD and the current word of an active round.
func (g *Game) renderRound(dst *core.Screen, s round.State) {
	hudY := 3
	left := 2
	right := g.screenW - 2

	// Score, timer, record
	dst.DrawTextColored(left, hudY, fmt.Sprintf("SCORE %d", s.Score), core.ColorBrightWhite)
	dst.DrawTextCentered(hudY, fmt.Sprintf("TIME %d", ceilSeconds(s.TimeRemaining)), g.timerColor())
	best := fmt.Sprintf("BEST %d", core.Max(s.HighScore, s.Score))
	dst.DrawTextColored(right-utf8.RuneCountInString(best), hudY, best, core.ColorGray)

	// Combo and streak badge
	if s.Combo > 0 {
		combo := fmt.Sprintf("COMBO x%d  %.1fx", s.Combo, g.engine.Rules().ComboMultiplier(s.Combo))
		dst.DrawTextColored(left, hudY+1, combo, core.ColorCyan)
	}
	if g.fx.streak > 0 {
		idx := core.Min(g.fx.streak, len(streakNames)) - 1
		badge := fmt.Sprintf("%s x%d", streakNames[idx], s.Combo)
		dst.DrawTextColored(right-utf8.RuneCountInString(badge), hudY+1, badge, streakColors[idx])
	}
	dst.DrawHLine(left, hudY+2, right-left, '─', core.ColorGray)

	mid := g.screenH / 2

	// Banner above the word
	switch {
	case g.fx.banner > 0:
		dst.DrawTextCentered(mid-2, g.fx.bannerText, core.ColorBrightRed)
	case g.fx.popup > 0:
		dst.DrawTextCentered(mid-2, g.fx.popupText, core.ColorBrightGreen)
	}

	g.renderPanel(dst, s, mid)
	g.renderWord(dst, s, mid)

	// Tier label
	label := s.CurrentWord.Tier.String()
	labelColor := core.ColorGray
	if s.CurrentWord.Tier == words.TierBonus {
		label = fmt.Sprintf("bonus x%g", g.engine.Source().Multiplier(words.TierBonus))
		labelColor = core.ColorMagenta
	}
	dst.DrawTextCentered(mid+2, label, labelColor)

	if !s.TimerStarted {
		dst.DrawTextCentered(mid+4, "the clock starts on your first letter", core.ColorGray)
	}
}

// renderPanel frames the word, its caret and its tier label. The frame
// shakes with the word and turns red while a mistake flashes.
func (g *Game) renderPanel(dst *core.Screen, s round.State, mid int) {
	w := core.Clamp(len(s.CurrentWord.Text)*2-1+panelPadding, panelMinWidth, g.screenW-4)
	r := core.CenteredRect(g.screenW/2+g.fx.shakeOffset(), mid+1, w, 5)

	c := core.ColorBlue
	if s.CurrentWord.Tier == words.TierBonus {
		c = core.ColorMagenta
	}
	if g.fx.flash > 0 && g.fx.flashKind != flashComplete {
		c = core.ColorRed
	}
	dst.DrawBox(r, c)
}

// renderWord draws the current word with the typed part, the next letter
// and the rest in different colors, plus a caret under the next letter.
func (g *Game) renderWord(dst *core.Screen, s round.State, y int) {
	text := s.CurrentWord.Text
	typed := len(s.TypedPrefix)

	// Letters are spaced out for readability
	width := len(text)*2 - 1
	x := (g.screenW-width)/2 + g.fx.shakeOffset()

	restColor := core.ColorBrightWhite
	if s.CurrentWord.Tier == words.TierBonus {
		restColor = core.ColorBrightMagenta
	}

	for i := 0; i < len(text); i++ {
		c := restColor
		switch {
		case g.fx.flash > 0 && (g.fx.flashKind == flashWrong || g.fx.flashKind == flashComboLost):
			c = core.ColorBrightRed
		case i < typed:
			c = core.ColorGreen
		case i == typed:
			c = core.ColorBrightYellow
		}
		dst.SetColored(x+i*2, y, rune(text[i]), c)
	}

	if typed < len(text) {
		dst.SetColored(x+typed*2, y+1, '^', core.ColorYellow)
	}
}

// renderTitleScreen draws the duration picker before the first round.
func (g *Game) renderTitleScreen(dst *core.Screen, s round.State) {
	mid := g.screenH / 2

	dst.DrawTextCentered(mid-3, "Type each word before the stars fade.", core.ColorWhite)
	g.renderDurationPicker(dst, mid-1)
	g.renderRecord(dst, mid+1, s)
	dst.DrawTextCentered(mid+3, "press space to start", core.ColorBrightYellow)
}

// renderResults draws the summary of the last round.
func (g *Game) renderResults(dst *core.Screen, s round.State, r round.RoundEnded) {
	y := 3
	dst.DrawTextCentered(y, "ROUND OVER", core.ColorBrightYellow)

	rows := []struct {
		label string
		value string
	}{
		{"Score", fmt.Sprintf("%d", r.Score)},
		{"Words", fmt.Sprintf("%d", r.WordsCompleted)},
		{"Max combo", fmt.Sprintf("%d", r.MaxCombo)},
		{"WPM", fmt.Sprintf("%d", r.WPM)},
		{"Session best", fmt.Sprintf("%d", s.SessionBest)},
	}

	const blockW = 24
	x := (g.screenW - blockW) / 2
	for i, row := range rows {
		dst.DrawTextColored(x, y+2+i, row.label, core.ColorGray)
		dst.DrawTextColored(x+blockW-len(row.value), y+2+i, row.value, core.ColorBrightWhite)
	}

	next := y + 3 + len(rows)
	if r.NewHighScore {
		dst.DrawTextCentered(next, fmt.Sprintf("NEW HIGH SCORE FOR %s!", formatDuration(r.Duration)), core.ColorBrightGreen)
	} else {
		dst.DrawTextCentered(next, fmt.Sprintf("High score %d", r.HighScore), core.ColorGray)
	}

	if next+5 < g.screenH {
		g.renderDurationPicker(dst, next+2)
		dst.DrawTextCentered(next+4, "press space to play again", core.ColorBrightYellow)
	}
}

// renderDurationPicker draws the selectable durations with the current one bracketed.
func (g *Game) renderDurationPicker(dst *core.Screen, y int) {
	parts := make([]string, len(g.settings.Durations))
	for i, d := range g.settings.Durations {
		if i == g.selected {
			parts[i] = "[" + formatDuration(d) + "]"
		} else {
			parts[i] = " " + formatDuration(d) + " "
		}
	}
	line := "◀ " + strings.Join(parts, " ") + " ▶"
	x := (g.screenW - utf8.RuneCountInString(line)) / 2
	dst.DrawTextColored(x, y, line, core.ColorGray)

	// Highlight the selected entry
	offset := 2
	for i := 0; i < g.selected; i++ {
		offset += utf8.RuneCountInString(parts[i]) + 1
	}
	dst.DrawTextColored(x+offset, y, parts[g.selected], core.ColorBrightCyan)
}

func (g *Game) renderRecord(dst *core.Screen, y int, s round.State) {
	record := fmt.Sprintf("High score %d", g.idleBest)
	if s.SessionBest > 0 {
		record += fmt.Sprintf("   Session best %d", s.SessionBest)
	}
	dst.DrawTextCentered(y, record, core.ColorGray)
}

// timerColor turns yellow after the first warning and red after the last,
// brightening while a warning pulse runs.
func (g *Game) timerColor() core.Color {
	if g.fx.pulseThreshold == 0 {
		return core.ColorBrightWhite
	}

	c := core.ColorYellow
	th := g.engine.Rules().TimerLowThresholds
	lowest := th[0]
	for _, t := range th {
		lowest = min(lowest, t)
	}
	if g.fx.pulseThreshold <= lowest {
		c = core.ColorRed
	}
	if g.fx.pulseOn() {
		c = c.Bright()
	}
	return c
}

func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%ds", round.DurationTier(d))
}

func comboLostText(e round.ComboLost) string {
	return fmt.Sprintf("COMBO LOST x%d", e.Previous)
}

func pointsText(points int) string {
	return fmt.Sprintf("+%d", points)
}
