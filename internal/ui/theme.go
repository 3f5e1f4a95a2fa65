package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	IconTrophy = "🏆"
	IconBolt   = "⚡"
	IconBook   = "📚"
	IconUser   = "👤"
	IconFeed   = "📰"
	IconSeed   = "🌱"
	IconError  = "🧨"
	IconKey    = "🔑"
)

var (
	cPrimary = lipgloss.Color("63")
	cAccent  = lipgloss.Color("205")
	cGood    = lipgloss.Color("42")
	cWarn    = lipgloss.Color("214")
	cBad     = lipgloss.Color("196")
	cMuted   = lipgloss.Color("244")
	cGold    = lipgloss.Color("220")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
)

func Heading(icon, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Rank highlights the podium.
func Rank(rank int) string {
	s := fmt.Sprintf("#%d", rank)
	switch rank {
	case 1:
		return Gold.Render(s)
	case 2, 3:
		return H2.Render(s)
	default:
		return Muted.Render(s)
	}
}

// ActivityType colors an activity type tag such as "[xp]".
func ActivityType(typ string) string {
	tag := "[" + typ + "]"
	switch typ {
	case "xp", "quiz_complete", "skill_complete", "game_complete":
		return Good.Render(tag)
	case "user_remove", "xp_adjust":
		return Warn.Render(tag)
	default:
		return Key.Render(tag)
	}
}
