package app

import (
	"context"
	"time"

	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/watcher"
)

// WatchOptions 监听命令的参数
type WatchOptions struct {
	Target    string
	Overrides watcher.Overrides
	Debounce  time.Duration // 为 0 时使用配置
}

// NewWatcher 构造目录监听器
func (r *Runtime) NewWatcher(opts WatchOptions) (*watcher.Watcher, error) {
	abs, err := r.ResolveTarget(opts.Target)
	if err != nil {
		return nil, err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = r.Config.Watch.Debounce
	}

	w, err := watcher.New(r.Fs, abs, r.Registry, r.Destinations, r.Sessions, watcher.Options{
		Debounce:  debounce,
		Workers:   r.Config.Watch.Workers,
		LockDir:   r.Config.LockDir(),
		Overrides: opts.Overrides,
	})
	if err != nil {
		return nil, err
	}
	w.Recorder = r.Recorder()
	w.Notifier = NewDesktopNotifier()
	return w, nil
}

// RunWatch 监听目录直到 ctx 结束
func (r *Runtime) RunWatch(ctx context.Context, w *watcher.Watcher) error {
	logger.Get().Info().Msg("==================================================")
	logger.Get().Info().Msgf(" 开始监听: %s", w.Target())
	logger.Get().Info().Msg("==================================================")

	if err := w.Run(ctx); err != nil {
		return err
	}

	stats := w.Stats()
	logger.Get().Info().
		Int64("sorted", stats.Sorted).
		Int64("duplicates", stats.Duplicates).
		Int64("errors", stats.Errors).
		Msg("监听结束")
	return nil
}
