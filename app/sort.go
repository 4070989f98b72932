package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/classifier"
	"github.com/stargirl99/Cable/pkg/destination"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/scanner"
	"github.com/stargirl99/Cable/pkg/sorter"
)

// PlanItem 预览中的一个条目
type PlanItem struct {
	Entry    scanner.Entry
	Category classifier.Category
	Dir      string // 预计目标目录（未处理冲突）
}

// Plan 一次整理的预览
type Plan struct {
	Target  string
	Session internal.Session
	Items   []PlanItem
}

// Entries 返回按顺序排列的条目
func (p *Plan) Entries() []scanner.Entry {
	entries := make([]scanner.Entry, len(p.Items))
	for i, item := range p.Items {
		entries[i] = item.Entry
	}
	return entries
}

// Summary 按分类统计条目数和大小，顺序与分类表一致
func (p *Plan) Summary() []CategorySummary {
	index := make(map[string]int)
	var out []CategorySummary
	for _, item := range p.Items {
		i, ok := index[item.Category.ID]
		if !ok {
			i = len(out)
			index[item.Category.ID] = i
			out = append(out, CategorySummary{Category: item.Category})
		}
		out[i].Count++
		out[i].Bytes += item.Entry.Size
	}
	return out
}

// CategorySummary 单个分类的统计
type CategorySummary struct {
	Category classifier.Category
	Count    int
	Bytes    int64
}

// BuildPlan 列出目标目录中需要整理的条目并计算预计目标目录，不修改文件
func (r *Runtime) BuildPlan(target string, session internal.Session) (*Plan, error) {
	abs, err := r.ResolveTarget(target)
	if err != nil {
		return nil, err
	}
	session = session.Normalize()

	walker := scanner.NewFileWalker(r.Fs, r.Registry.RootFolders(), session.ExcludePatterns)
	entries, err := walker.List(abs)
	if err != nil {
		return nil, err
	}
	entries = scanner.Order(entries, session.SortMode)

	sniffer := classifier.NewSniffer(r.Fs, r.Registry)
	opts := destination.OptionsFromSession(session)

	plan := &Plan{Target: abs, Session: session, Items: make([]PlanItem, 0, len(entries))}
	for _, e := range entries {
		id := r.Registry.Classify(e)
		if session.SniffContent {
			id = sniffer.Refine(e, id)
		}
		plan.Items = append(plan.Items, PlanItem{
			Entry:    e,
			Category: r.Registry.Lookup(id),
			Dir:      r.Destinations.Dir(e, id, abs, opts),
		})
	}

	logger.Get().Debug().Msgf("预览完成: %s（%d 个条目）", abs, len(plan.Items))
	return plan, nil
}

// RunSort 执行预览中的整理
func (r *Runtime) RunSort(ctx context.Context, plan *Plan, onProgress func(sorter.Progress)) (*sorter.Result, error) {
	engine := sorter.NewEngine(r.Fs, r.Registry, r.Destinations)
	engine.Recorder = r.Recorder()

	opts := sorter.OptionsFromSession(plan.Session)
	opts.OnProgress = onProgress
	return engine.Run(ctx, plan.Target, plan.Entries(), opts)
}

// RelDir 以目标目录为基准显示目录，不在目标目录内时返回绝对路径
func RelDir(target, dir string) string {
	rel, err := filepath.Rel(target, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return dir
	}
	return rel
}
