package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/config"
	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/classifier"
	"github.com/stargirl99/Cable/pkg/database"
	"github.com/stargirl99/Cable/pkg/destination"
	"github.com/stargirl99/Cable/pkg/logger"
)

// ErrNotDirectory 目标路径不是目录
var ErrNotDirectory = errors.New("目标不是目录")

// Runtime 一次命令执行共享的组件
type Runtime struct {
	Config       *config.Config
	Fs           afero.Fs
	Registry     *classifier.Registry
	Destinations *destination.Resolver
	Sessions     *config.Provider
	History      *database.Store
}

// NewRuntime 构造运行时组件。withHistory 为 true 时打开历史数据库，打开失败只记录警告
func NewRuntime(cfg *config.Config, withHistory bool) *Runtime {
	fs := afero.NewOsFs()
	registry := cfg.Registry()

	r := &Runtime{
		Config:       cfg,
		Fs:           fs,
		Registry:     registry,
		Destinations: destination.NewResolver(fs, registry, cfg.DefaultsMap, cfg.DefaultsFallback),
		Sessions:     cfg.SessionProvider(),
	}

	if withHistory && cfg.Database.Path != "" {
		store, err := database.NewStore(cfg.Database.Path)
		if err != nil {
			logger.Get().Warn().Err(err).Msg("打开历史数据库失败，本次不记录历史")
		} else {
			r.History = store
		}
	}
	return r
}

// Recorder 返回历史记录接收者，没有数据库时返回 nil
func (r *Runtime) Recorder() internal.Recorder {
	if r.History == nil {
		return nil
	}
	return r.History
}

func (r *Runtime) Close() error {
	if r.History != nil {
		return r.History.Close()
	}
	return nil
}

// ResolveTarget 返回目标目录的绝对路径，目录不可访问时返回错误
func (r *Runtime) ResolveTarget(target string) (string, error) {
	if target == "" {
		target = "."
	}
	abs, err := filepath.Abs(internal.MustExpandPath(target))
	if err != nil {
		return "", err
	}
	info, err := r.Fs.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("无法访问目录: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return abs, nil
}
