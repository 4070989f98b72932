package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stargirl99/Cable/app"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "查看最近的整理记录",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := app.NewRuntime(cfg, true)
		defer rt.Close()

		if rt.History == nil {
			return errors.New("历史数据库不可用")
		}

		records, err := rt.History.Recent(historyLimit)
		if err != nil {
			return fmt.Errorf("查询历史记录失败: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "暂无记录")
			return nil
		}

		rows := make([][]string, 0, len(records))
		for _, r := range records {
			to := r.ToPath
			if to == "" {
				to = "-"
			}
			rows = append(rows, []string{
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Source,
				r.Action,
				r.Category,
				r.FromPath,
				to,
				formatBytes(r.Size),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"时间", "来源", "操作", "分类", "原路径", "新路径", "大小"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		))

		total, err := rt.History.Count()
		if err == nil {
			fmt.Fprintf(out, "共 %s 条记录，显示最近 %d 条\n", strconv.FormatInt(total, 10), len(records))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "显示的记录条数")
	rootCmd.AddCommand(historyCmd)
}
