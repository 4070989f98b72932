package tui

import "github.com/charmbracelet/lipgloss"

// 界面配色
const (
	colorAccent = lipgloss.Color("205")
	colorDone   = lipgloss.Color("86")
	colorWarn   = lipgloss.Color("214")
	colorMuted  = lipgloss.Color("241")
	colorPath   = lipgloss.Color("147")
)

func heading(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true).MarginBottom(1)
}

func boxed(border lipgloss.Border) lipgloss.Style {
	return lipgloss.NewStyle().Border(border).BorderForeground(colorAccent).Padding(1)
}

var (
	accentStyle      = lipgloss.NewStyle().Foreground(colorAccent)
	headingStyle     = heading(colorAccent)
	doneHeadingStyle = heading(colorDone)
	warnHeadingStyle = heading(colorWarn)
	sectionStyle     = heading(colorDone)

	previewBoxStyle = boxed(lipgloss.RoundedBorder())
	summaryBoxStyle = boxed(lipgloss.DoubleBorder())

	ruleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	hintStyle = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
	pathStyle = lipgloss.NewStyle().Foreground(colorPath).Italic(true)
)

// categoryStyle 按分类配置的颜色渲染，颜色为空时不着色
func categoryStyle(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
