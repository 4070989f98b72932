package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/stargirl99/Cable/app"
	"github.com/stargirl99/Cable/pkg/sorter"
	"github.com/stargirl99/Cable/pkg/undo"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

func renderPlan(plan *app.Plan) string {
	rows := make([][]string, 0, len(plan.Items))
	for _, it := range plan.Items {
		rows = append(rows, []string{
			it.Entry.Name,
			it.Category.Icon + " " + it.Category.Folder,
			app.RelDir(plan.Target, it.Dir),
			formatBytes(it.Entry.Size),
		})
	}
	return renderTable([]string{"名称", "分类", "目标目录", "大小"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight})
}

func renderResult(plan *app.Plan, r *sorter.Result) string {
	var rows [][]string
	seen := make(map[string]bool)
	for _, c := range plan.Summary() {
		seen[c.Category.ID] = true
		if r.Counts[c.Category.ID] == 0 {
			continue
		}
		rows = append(rows, []string{
			c.Category.Icon + " " + c.Category.Folder,
			fmt.Sprintf("%d", r.Counts[c.Category.ID]),
			formatBytes(r.Bytes[c.Category.ID]),
		})
	}
	// 内容识别可能产生预览中没有的分类
	var extra []string
	for id := range r.Counts {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		rows = append(rows, []string{id, fmt.Sprintf("%d", r.Counts[id]), formatBytes(r.Bytes[id])})
	}
	rows = append(rows, []string{"合计", fmt.Sprintf("%d", r.Total()), formatBytes(r.TotalBytes())})

	var b strings.Builder
	b.WriteString(renderTable([]string{"分类", "数量", "大小"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight}))
	b.WriteString("\n")
	fmt.Fprintf(&b, "重复跳过: %d  已消失: %d  失败: %d  耗时: %s\n",
		r.Duplicates, r.Missing, r.Failed, r.Elapsed.Round(time.Millisecond))
	if r.LogWritten {
		b.WriteString("撤销日志已保存，运行 cable undo 可还原\n")
	}
	return b.String()
}

func renderUndo(out undo.Outcome) string {
	if out.NothingToUndo {
		return "没有可撤销的操作\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "已还原 %d 个文件\n", out.Restored)
	if out.NotFound > 0 {
		fmt.Fprintf(&b, "%d 个文件已不存在（可能已被移动）\n", out.NotFound)
	}
	if out.Failed > 0 {
		fmt.Fprintf(&b, "%d 个文件还原失败\n", out.Failed)
	}
	return b.String()
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(36),
		progressbar.OptionClearOnFinish(),
	)
}

// confirm 询问是否继续，输入不是终端时直接继续
func confirm(in *os.File, out io.Writer, prompt string) bool {
	if !isTerminal(in) {
		return true
	}
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
