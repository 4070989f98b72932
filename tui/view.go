package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m *model) View() string {
	switch m.state {
	case StatePreview:
		return m.previewView()
	case StateSorting:
		return m.sortingView()
	case StateComplete:
		return m.completeView()
	default:
		return "未知状态"
	}
}

func (m *model) previewView() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("📦 cable 文件整理") + "\n")
	b.WriteString(m.renderSessionLine() + "\n\n")

	if len(m.plan.Items) == 0 {
		b.WriteString(hintStyle.Render("目录中没有需要整理的文件") + "\n\n")
		b.WriteString(hintStyle.Render("按 Enter 或 q 退出") + "\n")
		return lipgloss.NewStyle().Padding(1).Render(b.String())
	}

	b.WriteString(previewBoxStyle.Render(m.previewList.View()) + "\n")
	b.WriteString(m.renderCategoryLine() + "\n\n")

	b.WriteString(ruleStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("操作提示：") + "\n")
	b.WriteString("  • ↑/↓ 浏览条目\n")
	b.WriteString("  • Enter 开始整理\n")
	b.WriteString("  • q 退出\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}

func (m *model) sortingView() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render(m.spinner.View()+" 正在整理文件...") + "\n\n")

	b.WriteString(sectionStyle.Render("处理进度：") + "\n")
	b.WriteString(m.progressBar.View() + "\n")
	b.WriteString(fmt.Sprintf("  %d / %d\n\n", m.done, m.total))

	b.WriteString(sectionStyle.Render("当前文件：") + "\n")
	b.WriteString(pathStyle.Render(m.currentFile) + "\n\n")
	b.WriteString(hintStyle.Render("Ctrl+C 取消") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) completeView() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(warnHeadingStyle.Render("⚠ 整理未完成: "+m.err.Error()) + "\n\n")
	} else {
		b.WriteString(doneHeadingStyle.Render("✅ 整理完成！") + "\n\n")
	}

	if m.result != nil {
		b.WriteString(summaryBoxStyle.Render(m.renderFinalStats()) + "\n\n")
	}

	b.WriteString(ruleStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("按 Enter 或 q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) renderSessionLine() string {
	s := m.plan.Session
	mode := "移动"
	if s.CopyMode {
		mode = "复制"
	}
	parts := []string{
		"模式: " + mode,
		"排序: " + string(s.SortMode),
		"目标: " + string(s.DestMode),
	}
	if s.DateSubfolders {
		parts = append(parts, "按日期分目录")
	}
	return hintStyle.Render(strings.Join(parts, "  |  "))
}

func (m *model) renderCategoryLine() string {
	var parts []string
	for _, c := range m.plan.Summary() {
		style := categoryStyle(c.Category.Color)
		parts = append(parts, style.Render(fmt.Sprintf("%s %s %d", c.Category.Icon, c.Category.Folder, c.Count)))
	}
	return strings.Join(parts, "  ")
}

func (m *model) renderFinalStats() string {
	r := m.result
	var b strings.Builder
	b.WriteString("📊 最终统计：\n\n")
	for _, c := range m.plan.Summary() {
		n := r.Counts[c.Category.ID]
		if n == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %-16s %4d 个  %s\n", c.Category.Icon, c.Category.Folder, n, humanize.Bytes(uint64(r.Bytes[c.Category.ID]))))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  • 已整理：     %d 个（%s）\n", r.Total(), humanize.Bytes(uint64(r.TotalBytes()))))
	b.WriteString(fmt.Sprintf("  • 重复跳过：   %d 个\n", r.Duplicates))
	if r.Missing > 0 {
		b.WriteString(fmt.Sprintf("  • 已消失：     %d 个\n", r.Missing))
	}
	if r.Failed > 0 {
		b.WriteString(fmt.Sprintf("  • 失败：       %d 个\n", r.Failed))
	}
	b.WriteString(fmt.Sprintf("  • 总耗时：     %s\n", r.Elapsed.Round(time.Millisecond)))
	if r.LogWritten {
		b.WriteString("\n  撤销日志已保存，运行 cable undo 可还原\n")
	}
	return b.String()
}
