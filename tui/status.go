package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/types"
)

// formatElapsed renders game seconds as "45s", "5m30s" or "1h02m".
func formatElapsed(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh%02dm", seconds/3600, seconds%3600/60)
	}
}

// statusSegments builds the left and right halves of the status bar. The
// right half drops detail until it fits in width.
func statusSegments(s types.Snapshot, width int) (string, string) {
	exits := "none"
	if len(s.Location.Exits) > 0 {
		abbr := make([]string, len(s.Location.Exits))
		for i, dir := range s.Location.Exits {
			abbr[i] = dir[:1]
		}
		exits = strings.Join(abbr, ",")
	}
	left := fmt.Sprintf(" %s | Exits: %s", s.Location.Name, exits)

	p := s.Player
	hp := fmt.Sprintf("HP %d/%d", p.Health, p.MaxHealth)
	clock := formatElapsed(s.Elapsed) + " "
	candidates := []string{
		fmt.Sprintf("%s | Lv %d | XP %d/%d | Wt %s/%s | %s", hp, p.Level, p.Experience,
			p.ExperienceToNextLevel, inventory.FormatWeight(p.CurrentWeight),
			inventory.FormatWeight(p.MaxCarryWeight), clock),
		fmt.Sprintf("%s | Lv %d | %s", hp, p.Level, clock),
		hp + " ",
	}
	right := candidates[len(candidates)-1]
	for _, c := range candidates {
		if lipgloss.Width(left)+lipgloss.Width(c)+2 < width {
			right = c
			break
		}
	}
	return left, right
}

// renderStatusBar produces a full-width inverted status line with the
// current room, its exits and the player's condition.
func (m Model) renderStatusBar() string {
	s := m.session.Snapshot()
	left, right := statusSegments(s, m.width)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	style := styleStatusBar
	if s.Player.Health*4 <= s.Player.MaxHealth {
		style = styleHealthLow
	}
	return style.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
