package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stargirl99/Cable/app"
	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/sorter"
	"github.com/stargirl99/Cable/tui"
)

var sortCmd = &cobra.Command{
	Use:   "sort [directory]",
	Short: "整理目录中的文件",
	Long: `预览并整理目录的直接子项，默认整理当前目录。
文件按扩展名归入分类文件夹，子目录归入 Folders，未知类型归入 Miscellaneous。
移动模式会在目录中写入 sort_log.json，可用 cable undo 还原。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	rt := app.NewRuntime(cfg, true)
	defer rt.Close()

	session, err := rt.Sessions.LoadSession()
	if err != nil {
		logger.Get().Warn().Err(err).Msg("读取会话文件失败，使用默认选项")
	}
	session, err = applySortFlags(cmd, session)
	if err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	if save {
		if err := rt.Sessions.SaveSession(session); err != nil {
			return err
		}
		logger.Get().Info().Msgf("会话已保存: %s", rt.Sessions.Path)
	}

	plan, err := rt.BuildPlan(target, session)
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	plain, _ := cmd.Flags().GetBool("plain")
	if !plain && isTerminal(os.Stdout) && isTerminal(os.Stdin) {
		return runSortTUI(rt, plan, yes)
	}
	return runSortPlain(cmd, rt, plan, yes)
}

func runSortTUI(rt *app.Runtime, plan *app.Plan, yes bool) error {
	if err := quietConsole(); err != nil {
		return err
	}

	result, err := tui.Run(plan, func(ctx context.Context, onProgress func(sorter.Progress)) (*sorter.Result, error) {
		return rt.RunSort(ctx, plan, onProgress)
	}, yes)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println("已取消")
	}
	return nil
}

func runSortPlain(cmd *cobra.Command, rt *app.Runtime, plan *app.Plan, yes bool) error {
	out := cmd.OutOrStdout()
	if len(plan.Items) == 0 {
		fmt.Fprintln(out, "目录中没有需要整理的文件")
		return nil
	}

	fmt.Fprintln(out, renderPlan(plan))
	if !yes && !confirm(os.Stdin, out, fmt.Sprintf("整理 %d 个条目?", len(plan.Items))) {
		fmt.Fprintln(out, "已取消")
		return nil
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bar := newProgressBar(len(plan.Items), "整理中")
	result, err := rt.RunSort(ctx, plan, func(p sorter.Progress) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if result != nil {
		fmt.Fprint(out, renderResult(plan, result))
	}
	return err
}

// applySortFlags 用命令行中显式指定的参数覆盖会话选项
func applySortFlags(cmd *cobra.Command, s internal.Session) (internal.Session, error) {
	flags := cmd.Flags()

	if flags.Changed("copy") {
		s.CopyMode, _ = flags.GetBool("copy")
	}
	if flags.Changed("dates") {
		s.DateSubfolders, _ = flags.GetBool("dates")
	}
	if flags.Changed("sniff") {
		s.SniffContent, _ = flags.GetBool("sniff")
	}
	if flags.Changed("exif") {
		if exif, _ := flags.GetBool("exif"); exif {
			s.DateSource = internal.DateFromExif
		} else {
			s.DateSource = internal.DateFromMtime
		}
	}
	if flags.Changed("order") {
		v, _ := flags.GetString("order")
		mode, err := internal.ParseSortMode(v)
		if err != nil {
			return s, err
		}
		s.SortMode = mode
	}
	if flags.Changed("dest") {
		v, _ := flags.GetString("dest")
		mode, err := internal.ParseDestMode(v)
		if err != nil {
			return s, err
		}
		s.DestMode = mode
	}
	if flags.Changed("dest-root") {
		s.DestCustom, _ = flags.GetString("dest-root")
		if !flags.Changed("dest") {
			s.DestMode = internal.DestWhere
		}
	}
	if flags.Changed("exclude") {
		s.ExcludePatterns, _ = flags.GetStringSlice("exclude")
	}

	s.RunMode = internal.RunOnce
	return s.Normalize(), nil
}

func addSortFlags(c *cobra.Command) {
	c.Flags().Bool("copy", false, "复制而不是移动（复制无法撤销）")
	c.Flags().Bool("dates", false, "图片、视频、音频按 年/月 建立子目录")
	c.Flags().String("dest", "here", "目标位置: here, defaults, where")
	c.Flags().String("dest-root", "", "where 模式的目标根目录")
	c.Flags().String("order", "alpha", "处理顺序: alpha, ext, size, date, combo")
	c.Flags().StringSlice("exclude", nil, "排除的文件名模式（glob）")
	c.Flags().Bool("sniff", false, "对未知扩展名的文件按内容识别类型")
	c.Flags().Bool("exif", false, "日期子目录优先使用 EXIF 拍摄时间")
	c.Flags().BoolP("yes", "y", false, "跳过确认直接整理")
	c.Flags().Bool("plain", false, "不使用交互界面")
	c.Flags().Bool("save", false, "把本次选项保存为默认会话")
}

func init() {
	addSortFlags(sortCmd)
	rootCmd.AddCommand(sortCmd)
}
