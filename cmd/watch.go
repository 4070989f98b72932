package cmd

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stargirl99/Cable/app"
	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "监听目录，新文件落定后自动整理",
	Long: `监听目录的直接子项，文件在防抖时间内没有新的写入后自动整理。
每个文件整理时都会重新读取会话文件，修改会话无需重启。
同一目录同时只能有一个监听进程。按 Ctrl+C 退出。`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if logFile == "" && cfg.Logging.File == "" {
		opts := logOpts
		opts.File = filepath.Join(cfg.StateDir, "watcher.log")
		if err := logger.Init(opts); err != nil {
			return err
		}
		logOpts = opts
	}

	overrides, err := watchOverrides(cmd)
	if err != nil {
		return err
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")
	statsEvery, _ := cmd.Flags().GetDuration("stats-interval")

	rt := app.NewRuntime(cfg, true)
	defer rt.Close()

	w, err := rt.NewWatcher(app.WatchOptions{
		Target:    args[0],
		Overrides: overrides,
		Debounce:  debounce,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rt.RunWatch(gctx, w)
	})
	if statsEvery > 0 {
		g.Go(func() error {
			reportStats(gctx, w, statsEvery)
			return nil
		})
	}
	return g.Wait()
}

// reportStats 周期性记录监听计数，ctx 结束后返回
func reportStats(ctx context.Context, w *watcher.Watcher, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var last watcher.Stats
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := w.Stats()
			if stats == last {
				continue
			}
			last = stats
			logger.Get().Info().
				Int64("sorted", stats.Sorted).
				Int64("duplicates", stats.Duplicates).
				Int64("errors", stats.Errors).
				Int64("retries", stats.Retries).
				Msg("监听统计")
		}
	}
}

func watchOverrides(cmd *cobra.Command) (watcher.Overrides, error) {
	var o watcher.Overrides
	flags := cmd.Flags()

	if flags.Changed("dest") {
		v, _ := flags.GetString("dest")
		mode, err := internal.ParseDestMode(v)
		if err != nil {
			return o, err
		}
		o.DestMode = mode
	}
	if flags.Changed("dest-root") {
		v, _ := flags.GetString("dest-root")
		o.DestCustom = internal.MustExpandPath(v)
		if o.DestMode == "" {
			o.DestMode = internal.DestWhere
		}
	}
	return o, nil
}

func init() {
	watchCmd.Flags().String("dest", "", "覆盖会话中的目标位置: here, defaults, where")
	watchCmd.Flags().String("dest-root", "", "where 模式的目标根目录")
	watchCmd.Flags().Duration("debounce", 0, "防抖时间（默认使用配置 watch.debounce）")
	watchCmd.Flags().Duration("stats-interval", time.Minute, "记录统计的间隔，0 表示不记录")

	rootCmd.AddCommand(watchCmd)
}
