package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Formatter renders REPL output, optionally without color.
type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) render(style lipgloss.Style, s string) string {
	if !f.colored {
		return s
	}
	return style.Render(s)
}

func (f *Formatter) FormatError(err error) string {
	return f.render(ErrorStyle, fmt.Sprintf("Error: %v", err))
}

func (f *Formatter) FormatInfo(msg string) string {
	return f.render(InfoStyle, msg)
}

func (f *Formatter) FormatSuccess(msg string) string {
	return f.render(SuccessStyle, msg)
}

func (f *Formatter) FormatHeader(msg string) string {
	return f.render(HeaderStyle, msg)
}

func (f *Formatter) FormatDim(msg string) string {
	return f.render(DimStyle, msg)
}

// FormatMarkdown renders markdown for the terminal. Plain text passes
// through glamour unharmed, so replies can be fed here directly.
func (f *Formatter) FormatMarkdown(md string) string {
	if !f.colored {
		return md
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// FormatWelcome is the remindctl banner.
func (f *Formatter) FormatWelcome(owner string) string {
	header := f.render(HeaderStyle, "⏰ remind-bot")
	hint := f.render(DimStyle, fmt.Sprintf("身份：%s · 输入 提醒帮助 查看用法，/quit 退出", owner))
	return fmt.Sprintf("%s\n%s\n\n", header, hint)
}
