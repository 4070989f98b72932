package scanner

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Epoch 是 stat 失败时使用的修改时间
var Epoch = time.Unix(0, 0)

// Entry 目录中的一个条目（文件或子目录）
type Entry struct {
	Path    string
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
	Ext     string // 小写扩展名，包含前导点
	Stated  bool   // stat 是否成功
}

// NewEntry 读取路径信息构造条目，stat 失败时大小为 0、时间为 Epoch
func NewEntry(fs afero.Fs, path string) Entry {
	name := filepath.Base(path)
	e := Entry{
		Path:    path,
		Name:    name,
		Ext:     strings.ToLower(filepath.Ext(name)),
		ModTime: Epoch,
	}

	info, err := fs.Stat(path)
	if err != nil {
		return e
	}

	e.IsDir = info.IsDir()
	e.Size = info.Size()
	e.ModTime = info.ModTime()
	e.Stated = true
	return e
}
