package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/logger"
)

// FileWalker 列出目标目录的直接子项（不递归）
type FileWalker struct {
	Fs            afero.Fs
	IncludeHidden bool
	// Reserved 中的名字不参与整理（各分类的根目录名）
	Reserved map[string]bool
	Exclude  []string
}

func NewFileWalker(fs afero.Fs, reserved map[string]bool, exclude []string) *FileWalker {
	return &FileWalker{
		Fs:       fs,
		Reserved: reserved,
		Exclude:  exclude,
	}
}

// Skip 判断名字是否应被跳过：保留目录、隐藏文件、操作日志、排除模式
func (w *FileWalker) Skip(name string) bool {
	if w.Reserved[name] {
		return true
	}
	if !w.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if name == internal.OperationLogName {
		return true
	}
	return Excluded(name, w.Exclude)
}

// List 返回 root 下所有需要整理的条目
func (w *FileWalker) List(root string) ([]Entry, error) {
	infos, err := afero.ReadDir(w.Fs, root)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if w.Skip(info.Name()) {
			logger.Get().Trace().Msgf("跳过: %s", info.Name())
			continue
		}
		entries = append(entries, NewEntry(w.Fs, filepath.Join(root, info.Name())))
	}

	logger.Get().Debug().Msgf("扫描完成，共 %d 个条目: %s", len(entries), root)
	return entries, nil
}

// Excluded 判断文件名是否匹配任一 glob 排除模式（只匹配基本名）
func Excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
