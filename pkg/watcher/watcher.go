package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/classifier"
	"github.com/stargirl99/Cable/pkg/conflict"
	"github.com/stargirl99/Cable/pkg/destination"
	"github.com/stargirl99/Cable/pkg/fileops"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/scanner"
)

// ErrAlreadyWatching 同一目录已有监听进程
var ErrAlreadyWatching = errors.New("该目录已在监听中")

// SessionSource 提供最新的会话选项，每个文件落定时读取一次
type SessionSource interface {
	LoadSession() (internal.Session, error)
}

// Notifier 发送桌面通知
type Notifier interface {
	Notify(title, message string) error
}

// Overrides 命令行指定的选项，总是覆盖会话文件中的值
type Overrides struct {
	DestMode   internal.DestMode
	DestCustom string
}

// Apply 把覆盖项写入会话
func (o Overrides) Apply(s internal.Session) internal.Session {
	if o.DestMode != "" {
		s.DestMode = o.DestMode
	}
	if o.DestCustom != "" {
		s.DestCustom = o.DestCustom
	}
	return s
}

// Options 监听选项
type Options struct {
	Debounce time.Duration
	Workers  int
	// LockDir 不为空时在其中创建锁文件，防止同一目录被重复监听
	LockDir   string
	Overrides Overrides
}

// Stats 监听期间的计数
type Stats struct {
	Sorted     int64
	Duplicates int64
	Errors     int64
	Retries    int64
}

// Watcher 监听单个目录（不递归），文件安静一段时间后自动整理
type Watcher struct {
	Fs           afero.Fs
	Registry     *classifier.Registry
	Sniffer      *classifier.Sniffer
	Destinations *destination.Resolver
	Conflicts    *conflict.Resolver
	Sessions     SessionSource
	Recorder     internal.Recorder
	Notifier     Notifier

	target string
	opts   Options
	runID  string

	debouncer *Debouncer
	pool      *settlePool
	fsw       *fsnotify.Watcher
	lock      *flock.Flock

	mu       sync.RWMutex
	running  bool
	stopping bool
	stopCh   chan struct{}
	doneCh   chan struct{}

	sessionMu   sync.Mutex
	lastSession internal.Session

	sorted     atomic.Int64
	duplicates atomic.Int64
	errs       atomic.Int64
	retries    atomic.Int64
}

// New 创建监听器，target 必须是已存在的目录
func New(fsys afero.Fs, target string, registry *classifier.Registry, destinations *destination.Resolver, sessions SessionSource, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	info, err := fsys.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("无法访问监听目录: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("监听目标不是目录: %s", abs)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = internal.DefaultDebounce
	}
	if opts.Workers <= 0 {
		opts.Workers = internal.DefaultWorkers
	}

	w := &Watcher{
		Fs:           fsys,
		Registry:     registry,
		Sniffer:      classifier.NewSniffer(fsys, registry),
		Destinations: destinations,
		Conflicts:    conflict.NewResolver(fsys),
		Sessions:     sessions,
		target:       abs,
		opts:         opts,
		runID:        uuid.New().String(),
		lastSession:  opts.Overrides.Apply(internal.DefaultSession()),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	w.debouncer = NewDebouncer(opts.Debounce, w.onSettled)
	return w, nil
}

// Target 返回监听目录的绝对路径
func (w *Watcher) Target() string {
	return w.target
}

// LockPath 返回目录对应的锁文件路径
func LockPath(lockDir, target string) string {
	key := strconv.FormatUint(xxhash.Sum64String(target), 16)
	return filepath.Join(lockDir, "watch-"+key+".lock")
}

// Start 开始监听，不阻塞
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if w.opts.LockDir != "" {
		if err := os.MkdirAll(w.opts.LockDir, 0755); err != nil {
			return fmt.Errorf("创建状态目录失败: %w", err)
		}
		w.lock = flock.New(LockPath(w.opts.LockDir, w.target))
		locked, err := w.lock.TryLock()
		if err != nil {
			return fmt.Errorf("获取监听锁失败: %w", err)
		}
		if !locked {
			return fmt.Errorf("%w: %s", ErrAlreadyWatching, w.target)
		}
	}

	pool, err := newSettlePool(w.opts.Workers)
	if err != nil {
		w.releaseLock()
		return fmt.Errorf("创建 goroutine 池失败: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		pool.Close()
		w.releaseLock()
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	if err := fsw.Add(w.target); err != nil {
		fsw.Close()
		pool.Close()
		w.releaseLock()
		return fmt.Errorf("监听目录失败: %w", err)
	}

	w.pool = pool
	w.fsw = fsw
	w.running = true

	logger.Get().Info().
		Str("target", w.target).
		Dur("debounce", w.opts.Debounce).
		Int("workers", w.opts.Workers).
		Msg("开始监听")

	go w.run(ctx)
	return nil
}

// Stop 停止监听并等待进行中的整理完成。返回后不会再有文件被移动
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running || w.stopping {
		w.mu.Unlock()
		return
	}
	w.stopping = true
	w.mu.Unlock()

	w.debouncer.Stop()
	close(w.stopCh)
	if err := w.fsw.Close(); err != nil {
		logger.Get().Error().Err(err).Msg("关闭文件监听失败")
	}
	<-w.doneCh
	w.pool.Close()
	w.releaseLock()

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	s := w.Stats()
	logger.Get().Info().
		Int64("sorted", s.Sorted).
		Int64("duplicates", s.Duplicates).
		Int64("errors", s.Errors).
		Int64("retries", s.Retries).
		Msg("监听已停止")
}

// Run 监听直到 ctx 结束
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

// Stats 返回当前计数
func (w *Watcher) Stats() Stats {
	return Stats{
		Sorted:     w.sorted.Load(),
		Duplicates: w.duplicates.Load(),
		Errors:     w.errs.Load(),
		Retries:    w.retries.Load(),
	}
}

func (w *Watcher) releaseLock() {
	if w.lock == nil {
		return
	}
	if err := w.lock.Unlock(); err != nil {
		logger.Get().Warn().Err(err).Msg("释放监听锁失败")
	}
	w.lock = nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Get().Error().Err(err).Msg("文件监听错误")
			w.errs.Add(1)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if filepath.Dir(event.Name) != w.target {
		return
	}
	if info, err := w.Fs.Stat(event.Name); err != nil || info.IsDir() {
		return
	}
	logger.Get().Trace().Msgf("文件事件: %s %s", event.Op, event.Name)
	w.debouncer.Schedule(event.Name)
}

// onSettled 由防抖计时器调用，把整理任务交给 goroutine 池
func (w *Watcher) onSettled(path string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopping || w.pool == nil {
		return
	}
	if err := w.pool.Submit(func() { w.settle(path) }); err != nil {
		logger.Get().Error().Err(err).Msgf("提交整理任务失败: %s", path)
		w.errs.Add(1)
	}
}

// session 重新读取会话选项，失败时沿用上一次成功读取的值
func (w *Watcher) session() internal.Session {
	w.sessionMu.Lock()
	defer w.sessionMu.Unlock()

	if w.Sessions == nil {
		return w.lastSession
	}
	s, err := w.Sessions.LoadSession()
	if err != nil {
		logger.Get().Warn().Err(err).Msg("读取会话选项失败，沿用上一次的选项")
		return w.lastSession
	}
	w.lastSession = w.opts.Overrides.Apply(s).Normalize()
	return w.lastSession
}

// settle 重新校验文件并整理
func (w *Watcher) settle(path string) {
	name := filepath.Base(path)

	info, err := w.Fs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	if filepath.Dir(path) != w.target {
		return
	}

	session := w.session()
	walker := scanner.NewFileWalker(w.Fs, w.Registry.RootFolders(), session.ExcludePatterns)
	if walker.Skip(name) {
		logger.Get().Trace().Msgf("跳过: %s", name)
		return
	}

	entry := scanner.NewEntry(w.Fs, path)
	category := w.Registry.Classify(entry)
	if session.SniffContent && w.Sniffer != nil {
		category = w.Sniffer.Refine(entry, category)
	}

	dir, err := w.Destinations.Resolve(entry, category, w.target, destination.OptionsFromSession(session))
	if err != nil {
		w.handleError(path, err)
		return
	}

	proposed := filepath.Join(dir, name)
	if proposed == path {
		return
	}

	res := w.Conflicts.Resolve(path, false, proposed)
	if res.Outcome == conflict.Duplicate {
		logger.Get().Warn().Msgf("[SKIP] 目标已存在相同文件: %s", name)
		w.duplicates.Add(1)
		w.record(internal.ActionDuplicate, entry, category, res.Path)
		return
	}

	action := internal.ActionMove
	if session.CopyMode {
		action = internal.ActionCopy
		err = fileops.Copy(w.Fs, path, res.Path)
	} else {
		err = fileops.Move(w.Fs, path, res.Path)
	}
	if err != nil {
		w.handleError(path, err)
		return
	}

	// 目标在监听目录之外时记录完整路径
	folder, relErr := filepath.Rel(w.target, filepath.Dir(res.Path))
	if relErr != nil || strings.HasPrefix(folder, "..") {
		folder = filepath.Dir(res.Path)
	}
	if action == internal.ActionCopy {
		logger.Get().Info().Msgf("[COPY] %s  ->  %s", name, folder)
	} else {
		logger.Get().Info().Msgf("[MOVE] %s  ->  %s", name, folder)
	}

	w.sorted.Add(1)
	w.record(action, entry, category, res.Path)

	if session.Notify && w.Notifier != nil {
		msg := fmt.Sprintf("%s → %s", name, folder)
		if err := w.Notifier.Notify("cable", msg); err != nil {
			logger.Get().Debug().Err(err).Msg("发送通知失败")
		}
	}
}

// handleError 权限错误（文件被占用）时重新计时，其他错误记录后放弃
func (w *Watcher) handleError(path string, err error) {
	switch {
	case errors.Is(err, fs.ErrPermission):
		n := w.retries.Add(1)
		logger.Get().Debug().Err(err).Int64("retries", n).Msgf("文件暂时无法访问，稍后重试: %s", path)
		w.debouncer.Schedule(path)
	case errors.Is(err, fs.ErrNotExist):
		logger.Get().Debug().Msgf("文件已消失: %s", path)
	default:
		logger.Get().Error().Err(err).Msgf("[ERR] 无法处理 %s", filepath.Base(path))
		w.errs.Add(1)
	}
}

func (w *Watcher) record(action internal.Action, entry scanner.Entry, category, dst string) {
	if w.Recorder == nil {
		return
	}
	ev := internal.Event{
		RunID:    w.runID,
		Source:   internal.SourceWatch,
		Action:   action,
		From:     entry.Path,
		To:       dst,
		Category: category,
		Size:     entry.Size,
	}
	if err := w.Recorder.Record(ev); err != nil {
		logger.Get().Warn().Err(err).Msg("写入历史记录失败")
	}
}
