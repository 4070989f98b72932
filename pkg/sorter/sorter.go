package sorter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/classifier"
	"github.com/stargirl99/Cable/pkg/conflict"
	"github.com/stargirl99/Cable/pkg/destination"
	"github.com/stargirl99/Cable/pkg/fileops"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/oplog"
	"github.com/stargirl99/Cable/pkg/scanner"
)

// Options 一次批量整理的选项
type Options struct {
	Copy        bool
	Sniff       bool
	Destination destination.Options
	// OnProgress 每处理完一个条目调用一次
	OnProgress func(Progress)
}

// OptionsFromSession 从会话选项构造批量整理选项
func OptionsFromSession(s internal.Session) Options {
	return Options{
		Copy:        s.CopyMode,
		Sniff:       s.SniffContent,
		Destination: destination.OptionsFromSession(s),
	}
}

// Progress 单个条目的处理结果
type Progress struct {
	Done     int
	Total    int
	Entry    scanner.Entry
	Category string
	Action   internal.Action // 失败或源文件消失时为空
	Dst      string
	Err      error
}

// Result 一次批量整理的汇总
type Result struct {
	RunID      string
	Counts     map[string]int   // 分类标识 -> 处理的条目数
	Bytes      map[string]int64 // 分类标识 -> 处理的字节数
	Elapsed    time.Duration
	Moves      []oplog.Op
	Duplicates int
	Missing    int
	Failed     int
	Errors     []error
	LogWritten bool
}

// Total 返回实际移动或复制的条目数
func (r *Result) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

// TotalBytes 返回实际移动或复制的字节数
func (r *Result) TotalBytes() int64 {
	var n int64
	for _, b := range r.Bytes {
		n += b
	}
	return n
}

// Engine 批量整理引擎，按顺序逐个处理条目
type Engine struct {
	Fs           afero.Fs
	Registry     *classifier.Registry
	Sniffer      *classifier.Sniffer
	Destinations *destination.Resolver
	Conflicts    *conflict.Resolver
	Recorder     internal.Recorder
}

func NewEngine(fs afero.Fs, registry *classifier.Registry, destinations *destination.Resolver) *Engine {
	return &Engine{
		Fs:           fs,
		Registry:     registry,
		Sniffer:      classifier.NewSniffer(fs, registry),
		Destinations: destinations,
		Conflicts:    conflict.NewResolver(fs),
	}
}

// Run 处理 entries 中的每个条目。单个条目的错误只记录不中断；
// 只有目标目录不可访问时返回错误。ctx 取消时在下一个条目前停止，返回已完成部分。
func (e *Engine) Run(ctx context.Context, target string, entries []scanner.Entry, opts Options) (*Result, error) {
	info, err := e.Fs.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("无法访问目标目录: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("目标不是目录: %s", target)
	}

	start := time.Now()
	result := &Result{
		RunID:  uuid.New().String(),
		Counts: make(map[string]int),
		Bytes:  make(map[string]int64),
	}

	logger.Get().Info().Msgf("开始整理: %s（%d 个条目）", target, len(entries))

	var runErr error
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			logger.Get().Warn().Msgf("整理被取消，已处理 %d/%d", i, len(entries))
			runErr = err
			break
		}

		p := e.process(target, entry, opts, result)
		p.Done = i + 1
		p.Total = len(entries)
		if opts.OnProgress != nil {
			opts.OnProgress(p)
		}
	}

	if len(result.Moves) > 0 && !opts.Copy {
		l := oplog.New(result.Moves)
		l.ID = result.RunID
		if err := oplog.Write(e.Fs, target, l); err != nil {
			logger.Get().Error().Err(err).Msg("写入操作日志失败，本次整理无法撤销")
			result.Errors = append(result.Errors, err)
		} else {
			result.LogWritten = true
		}
	}

	result.Elapsed = time.Since(start)
	logger.Get().Info().
		Int("sorted", result.Total()).
		Int("duplicates", result.Duplicates).
		Int("missing", result.Missing).
		Int("failed", result.Failed).
		Dur("elapsed", result.Elapsed).
		Msg("整理完成")
	return result, runErr
}

func (e *Engine) process(target string, entry scanner.Entry, opts Options, result *Result) Progress {
	p := Progress{Entry: entry}

	exists, err := afero.Exists(e.Fs, entry.Path)
	if err == nil && !exists {
		logger.Get().Debug().Msgf("源文件已消失，跳过: %s", entry.Path)
		result.Missing++
		return p
	}

	category := e.Registry.Classify(entry)
	if opts.Sniff && e.Sniffer != nil {
		category = e.Sniffer.Refine(entry, category)
	}
	p.Category = category

	dir, err := e.Destinations.Resolve(entry, category, target, opts.Destination)
	if err != nil {
		return e.fail(p, result, err)
	}

	proposed := filepath.Join(dir, entry.Name)
	if proposed == entry.Path {
		logger.Get().Debug().Msgf("已在目标位置，跳过: %s", entry.Path)
		return p
	}

	res := e.Conflicts.Resolve(entry.Path, entry.IsDir, proposed)
	p.Dst = res.Path
	if res.Outcome == conflict.Duplicate {
		logger.Get().Info().Msgf("[SKIP] 重复文件: %s", entry.Name)
		result.Duplicates++
		p.Action = internal.ActionDuplicate
		e.record(result.RunID, internal.ActionDuplicate, entry, category, res.Path)
		return p
	}

	action := internal.ActionMove
	if opts.Copy {
		action = internal.ActionCopy
		err = fileops.Copy(e.Fs, entry.Path, res.Path)
	} else {
		err = fileops.Move(e.Fs, entry.Path, res.Path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if ok, _ := afero.Exists(e.Fs, entry.Path); !ok {
				result.Missing++
				return p
			}
		}
		return e.fail(p, result, err)
	}

	if action == internal.ActionMove {
		result.Moves = append(result.Moves, oplog.Op{Src: entry.Path, Dst: res.Path})
		logger.Get().Debug().Msgf("[MOVE] %s -> %s", entry.Path, res.Path)
	} else {
		logger.Get().Debug().Msgf("[COPY] %s -> %s", entry.Path, res.Path)
	}
	result.Counts[category]++
	result.Bytes[category] += entry.Size
	p.Action = action
	e.record(result.RunID, action, entry, category, res.Path)
	return p
}

func (e *Engine) fail(p Progress, result *Result, err error) Progress {
	err = fmt.Errorf("%s: %w", p.Entry.Name, err)
	logger.Get().Error().Err(err).Msgf("处理失败: %s", p.Entry.Path)
	result.Failed++
	result.Errors = append(result.Errors, err)
	p.Err = err
	return p
}

func (e *Engine) record(runID string, action internal.Action, entry scanner.Entry, category, dst string) {
	if e.Recorder == nil {
		return
	}
	ev := internal.Event{
		RunID:    runID,
		Source:   internal.SourceBatch,
		Action:   action,
		From:     entry.Path,
		To:       dst,
		Category: category,
		Size:     entry.Size,
	}
	if err := e.Recorder.Record(ev); err != nil {
		logger.Get().Warn().Err(err).Msg("写入历史记录失败")
	}
}
