package conflict

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/pkg/hasher"
	"github.com/stargirl99/Cable/pkg/logger"
)

// Outcome 冲突处理结果
type Outcome int

const (
	// Free 目标路径不存在，可直接使用
	Free Outcome = iota
	// Renamed 目标已存在且内容不同，使用带序号的新路径
	Renamed
	// Duplicate 目标已存在且内容完全相同，跳过
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Free:
		return "free"
	case Renamed:
		return "renamed"
	case Duplicate:
		return "duplicate"
	}
	return "unknown"
}

// Resolution 最终目标路径
type Resolution struct {
	Path    string
	Outcome Outcome
}

// Resolver 判断目标路径冲突
type Resolver struct {
	Fs afero.Fs
}

func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{Fs: fs}
}

// Resolve 对 proposed 做冲突判断。目录只做存在性检查，不计算哈希
func (r *Resolver) Resolve(src string, srcIsDir bool, proposed string) Resolution {
	exists, err := afero.Exists(r.Fs, proposed)
	if err == nil && !exists {
		return Resolution{Path: proposed, Outcome: Free}
	}

	if !srcIsDir && r.sameContent(src, proposed) {
		logger.Get().Debug().Msgf("目标已存在且内容相同: %s", proposed)
		return Resolution{Path: proposed, Outcome: Duplicate}
	}

	renamed := Disambiguate(r.Fs, proposed)
	logger.Get().Debug().
		Str("original_path", proposed).
		Str("new_path", renamed).
		Msg("文件名冲突，自动重命名")
	return Resolution{Path: renamed, Outcome: Renamed}
}

// sameContent 比较两个普通文件的内容，任何读取失败都视为不同
func (r *Resolver) sameContent(a, b string) bool {
	infoA, err := r.Fs.Stat(a)
	if err != nil || !infoA.Mode().IsRegular() {
		return false
	}
	infoB, err := r.Fs.Stat(b)
	if err != nil || !infoB.Mode().IsRegular() {
		return false
	}
	if infoA.Size() != infoB.Size() {
		return false
	}

	fa, err := hasher.Fingerprint(r.Fs, a)
	if err != nil {
		logger.Get().Warn().Err(err).Msgf("计算哈希失败，按不同文件处理: %s", a)
		return false
	}
	fb, err := hasher.Fingerprint(r.Fs, b)
	if err != nil {
		logger.Get().Warn().Err(err).Msgf("计算哈希失败，按不同文件处理: %s", b)
		return false
	}
	return fa == fb
}

// Disambiguate 在扩展名前追加 " (n)"，n 从 1 递增直到路径不存在
func Disambiguate(fs afero.Fs, path string) string {
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		stem, ext = name, ""
	}

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		// 无法判断是否存在时直接返回，由后续的移动操作报告错误
		if exists, err := afero.Exists(fs, candidate); err != nil || !exists {
			return candidate
		}
	}
}
