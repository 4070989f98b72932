package undo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/fileops"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/oplog"
)

var (
	// ErrCorruptLog 操作日志无法解析，未做任何改动
	ErrCorruptLog = errors.New("操作日志已损坏，无法撤销")
	// ErrNotUndoable 日志不是移动操作（复制无法撤销），未做任何改动
	ErrNotUndoable = errors.New("该操作日志不支持撤销")
)

// Outcome 撤销结果
type Outcome struct {
	Restored      int
	NotFound      int
	Failed        int
	NothingToUndo bool
	Errors        []error
}

// Undoer 按操作日志把文件移回原位置
type Undoer struct {
	Fs       afero.Fs
	Recorder internal.Recorder
	// OnProgress 每处理完一条记录调用一次
	OnProgress func(done, total int)
}

func NewUndoer(fs afero.Fs) *Undoer {
	return &Undoer{Fs: fs}
}

// Undo 倒序回放 target 中的操作日志，完成后删除日志。
// 没有日志时返回 NothingToUndo，不是错误。
func (u *Undoer) Undo(target string) (Outcome, error) {
	var out Outcome

	l, err := oplog.Read(u.Fs, target)
	switch {
	case errors.Is(err, oplog.ErrNotFound):
		logger.Get().Info().Msgf("没有可撤销的操作: %s", target)
		out.NothingToUndo = true
		return out, nil
	case errors.Is(err, oplog.ErrCorrupt):
		return out, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	case err != nil:
		return out, err
	}

	if l.Mode != oplog.ModeMove {
		return out, fmt.Errorf("%w: mode=%q", ErrNotUndoable, l.Mode)
	}

	logger.Get().Info().Msgf("开始撤销: %s（%d 条记录）", target, len(l.Ops))

	total := len(l.Ops)
	for i := total - 1; i >= 0; i-- {
		u.restore(l.ID, l.Ops[i], &out)
		if u.OnProgress != nil {
			u.OnProgress(total-i, total)
		}
	}

	if err := oplog.Remove(u.Fs, target); err != nil {
		out.Errors = append(out.Errors, err)
		logger.Get().Error().Err(err).Msg("删除操作日志失败")
	}

	logger.Get().Info().
		Int("restored", out.Restored).
		Int("not_found", out.NotFound).
		Int("failed", out.Failed).
		Msg("撤销完成")
	return out, nil
}

func (u *Undoer) restore(runID string, op oplog.Op, out *Outcome) {
	exists, err := afero.Exists(u.Fs, op.Dst)
	if err == nil && !exists {
		logger.Get().Warn().Msgf("文件已不存在，跳过: %s", op.Dst)
		out.NotFound++
		return
	}

	if err := u.Fs.MkdirAll(filepath.Dir(op.Src), 0755); err != nil {
		u.fail(op, out, fmt.Errorf("创建原目录失败: %w", err))
		return
	}
	if ok, _ := afero.Exists(u.Fs, op.Src); ok {
		u.fail(op, out, fmt.Errorf("原位置已被占用: %s", op.Src))
		return
	}
	if err := fileops.Move(u.Fs, op.Dst, op.Src); err != nil {
		u.fail(op, out, err)
		return
	}

	logger.Get().Debug().Msgf("[RESTORE] %s -> %s", op.Dst, op.Src)
	out.Restored++

	if u.Recorder != nil {
		ev := internal.Event{
			RunID:  runID,
			Source: internal.SourceUndo,
			Action: internal.ActionRestore,
			From:   op.Dst,
			To:     op.Src,
		}
		if err := u.Recorder.Record(ev); err != nil {
			logger.Get().Warn().Err(err).Msg("写入历史记录失败")
		}
	}
}

func (u *Undoer) fail(op oplog.Op, out *Outcome, err error) {
	logger.Get().Error().Err(err).Msgf("还原失败: %s", op.Dst)
	out.Failed++
	out.Errors = append(out.Errors, err)
}
