package classifier

import (
	"strings"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/scanner"
)

// Category 一个文件分类
type Category struct {
	ID         string
	Folder     string // 相对目录，可包含 "/"，例如 "Media/Images"
	Icon       string
	Color      string
	Extensions []string
}

var (
	miscCategory = Category{
		ID:     internal.MiscCategory,
		Folder: internal.MiscFolder,
		Icon:   "❓",
		Color:  "#9ca3af",
	}
	foldersCategory = Category{
		ID:     internal.FoldersCategory,
		Folder: internal.FoldersFolder,
		Icon:   "📁",
		Color:  "#fbbf24",
	}
)

// Registry 分类表和扩展名索引，构造后只读
type Registry struct {
	categories []Category
	byID       map[string]int
	index      map[string]string
	dated      map[string]bool
}

// NewRegistry 按顺序注册分类，同一扩展名以先注册者为准
func NewRegistry(categories []Category, datedIDs []string) *Registry {
	r := &Registry{
		byID:  make(map[string]int, len(categories)),
		index: make(map[string]string),
		dated: make(map[string]bool, len(datedIDs)),
	}

	for _, c := range categories {
		if c.ID == "" {
			continue
		}
		if _, exists := r.byID[c.ID]; exists {
			continue
		}
		if c.Folder == "" {
			c.Folder = c.ID
		}

		exts := make([]string, 0, len(c.Extensions))
		for _, ext := range c.Extensions {
			ext = NormalizeExt(ext)
			if ext == "" {
				continue
			}
			exts = append(exts, ext)
			if _, taken := r.index[ext]; !taken {
				r.index[ext] = c.ID
			}
		}
		c.Extensions = exts

		r.byID[c.ID] = len(r.categories)
		r.categories = append(r.categories, c)
	}

	for _, id := range datedIDs {
		r.dated[id] = true
	}

	return r
}

// NormalizeExt 转为小写并补全前导点
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Classify 返回条目的分类标识，目录总是归入 folders，未知扩展名归入 misc
func (r *Registry) Classify(e scanner.Entry) string {
	if e.IsDir {
		return internal.FoldersCategory
	}
	return r.ClassifyExt(e.Ext)
}

// ClassifyExt 按扩展名查找分类
func (r *Registry) ClassifyExt(ext string) string {
	if id, ok := r.index[strings.ToLower(ext)]; ok {
		return id
	}
	return internal.MiscCategory
}

// Lookup 返回分类定义，misc 与未配置的 folders 使用内置定义
func (r *Registry) Lookup(id string) Category {
	if i, ok := r.byID[id]; ok {
		return r.categories[i]
	}
	if id == internal.FoldersCategory {
		return foldersCategory
	}
	return miscCategory
}

// IsDated 分类是否按 年/月 建立子目录
func (r *Registry) IsDated(id string) bool {
	return r.dated[id]
}

// Categories 返回已注册分类的副本
func (r *Registry) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// RootFolders 返回各分类目录的第一级名字，这些名字在整理时被跳过
func (r *Registry) RootFolders() map[string]bool {
	roots := make(map[string]bool, len(r.categories))
	for _, c := range r.categories {
		root := strings.Split(strings.ReplaceAll(c.Folder, "\\", "/"), "/")[0]
		if root != "" {
			roots[root] = true
		}
	}
	return roots
}
