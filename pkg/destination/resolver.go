package destination

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/classifier"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/scanner"
)

// Options 目标目录相关的会话选项
type Options struct {
	Mode           internal.DestMode
	Root           string // 仅 Mode == where 时使用
	DateSubfolders bool
	DateSource     internal.DateSource
}

// OptionsFromSession 从会话选项中取出目标目录部分
func OptionsFromSession(s internal.Session) Options {
	return Options{
		Mode:           s.DestMode,
		Root:           s.DestCustom,
		DateSubfolders: s.DateSubfolders,
		DateSource:     s.DateSource,
	}
}

// Resolver 计算条目的目标目录
type Resolver struct {
	Fs       afero.Fs
	Registry *classifier.Registry
	Defaults map[string]string // 分类标识 -> 系统默认目录
	Fallback string            // 没有默认目录的分类使用的目录
}

// NewResolver 展开默认目录中的 ~ 和环境变量
func NewResolver(fs afero.Fs, registry *classifier.Registry, defaults map[string]string, fallback string) *Resolver {
	expanded := make(map[string]string, len(defaults))
	for id, p := range defaults {
		expanded[id] = internal.MustExpandPath(p)
	}
	return &Resolver{
		Fs:       fs,
		Registry: registry,
		Defaults: expanded,
		Fallback: internal.MustExpandPath(fallback),
	}
}

// Dir 只计算目标目录，不创建
func (r *Resolver) Dir(e scanner.Entry, categoryID, targetDir string, opts Options) string {
	cat := r.Registry.Lookup(categoryID)

	var base string
	switch {
	case opts.Mode == internal.DestDefaults:
		base = r.defaultDir(categoryID)
	case opts.Mode == internal.DestWhere && opts.Root != "":
		base = filepath.Join(opts.Root, filepath.FromSlash(cat.Folder))
	default:
		base = filepath.Join(targetDir, filepath.FromSlash(cat.Folder))
	}

	if opts.DateSubfolders && r.Registry.IsDated(categoryID) {
		if t, ok := r.bucketTime(e, opts.DateSource); ok {
			base = filepath.Join(base, fmt.Sprintf("%d", t.Year()), fmt.Sprintf("%02d", int(t.Month())))
		}
	}

	return base
}

// Resolve 计算目标目录并确保其存在
func (r *Resolver) Resolve(e scanner.Entry, categoryID, targetDir string, opts Options) (string, error) {
	dir := r.Dir(e, categoryID, targetDir, opts)
	if err := r.Fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建目标目录失败: %w", err)
	}
	return dir, nil
}

func (r *Resolver) defaultDir(categoryID string) string {
	if dir, ok := r.Defaults[categoryID]; ok && dir != "" {
		return dir
	}
	return r.Fallback
}

// bucketTime 返回用于 年/月 子目录的时间，stat 失败时不分桶
func (r *Resolver) bucketTime(e scanner.Entry, source internal.DateSource) (time.Time, bool) {
	if source == internal.DateFromExif && !e.IsDir {
		if t, err := r.exifTime(e.Path); err == nil {
			return t, true
		}
	}
	if !e.Stated {
		return time.Time{}, false
	}
	return e.ModTime, true
}

func (r *Resolver) exifTime(path string) (time.Time, error) {
	f, err := r.Fs.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, err
	}
	logger.Get().Trace().Msgf("使用 EXIF 时间: %s -> %s", path, t.Format("2006-01"))
	return t, nil
}
