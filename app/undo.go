package app

import (
	"github.com/stargirl99/Cable/pkg/undo"
)

// RunUndo 撤销目标目录中最近一次整理
func (r *Runtime) RunUndo(target string, onProgress func(done, total int)) (undo.Outcome, error) {
	abs, err := r.ResolveTarget(target)
	if err != nil {
		return undo.Outcome{}, err
	}

	u := undo.NewUndoer(r.Fs)
	u.Recorder = r.Recorder()
	u.OnProgress = onProgress
	return u.Undo(abs)
}
