package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#C084FC", "#04B575", "#FF6B6B", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	muted lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		muted: NewStyle(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// ambientBar renders the full-width mood strip reflecting the most recently
// detected emotion. An empty accent clears the theme, yielding a neutral bar.
func ambientBar(width int, accent string) string {
	style := lipgloss.NewStyle().Width(width)
	if accent != "" {
		style = style.Background(lipgloss.Color(accent)).Foreground(lipgloss.Color("#1E1B2E")).Bold(true)
	} else {
		style = style.Foreground(lipgloss.Color("#626262"))
	}
	return style.Render(" Rooha ")
}

// accentCard renders content inside the result card's accent-tinted border.
func accentCard(accent string, content string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color(accent)).
		PaddingLeft(1).
		Render(content)
}
