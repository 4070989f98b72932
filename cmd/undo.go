package cmd

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/stargirl99/Cable/app"
	"github.com/stargirl99/Cable/pkg/undo"
)

var undoCmd = &cobra.Command{
	Use:   "undo <directory>",
	Short: "撤销目录中最近一次整理",
	Long: `读取目录中的 sort_log.json，按相反顺序把文件移回原位置，完成后删除日志。
复制模式的整理不会生成日志，无法撤销。`,
	Args: cobra.ExactArgs(1),
	RunE: runUndo,
}

func runUndo(cmd *cobra.Command, args []string) error {
	rt := app.NewRuntime(cfg, true)
	defer rt.Close()

	out := cmd.OutOrStdout()
	var bar *progressbar.ProgressBar
	outcome, err := rt.RunUndo(args[0], func(done, total int) {
		if bar == nil {
			bar = newProgressBar(total, "还原中")
		}
		_ = bar.Set(done)
	})
	if bar != nil {
		_ = bar.Finish()
	}
	switch {
	case errors.Is(err, undo.ErrNotUndoable):
		fmt.Fprintln(out, "该日志来自复制操作，无法撤销")
		return err
	case errors.Is(err, undo.ErrCorruptLog):
		fmt.Fprintln(out, "无法读取 sort_log.json")
		return err
	case err != nil:
		return err
	}

	fmt.Fprint(out, renderUndo(outcome))
	return nil
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
