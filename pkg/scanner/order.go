package scanner

import (
	"sort"

	"golang.org/x/text/cases"

	"github.com/stargirl99/Cable/internal"
)

type sortKey struct {
	name  string
	ext   string
	size  int64
	mtime int64
}

// Order 按排序方式返回新的有序切片，不修改输入
func Order(entries []Entry, mode internal.SortMode) []Entry {
	fold := cases.Fold()

	out := make([]Entry, len(entries))
	copy(out, entries)

	keys := make(map[string]sortKey, len(out))
	for _, e := range out {
		keys[e.Path] = sortKey{
			name:  fold.String(e.Name),
			ext:   fold.String(e.Ext),
			size:  e.Size,
			mtime: e.ModTime.UnixNano(),
		}
	}

	less := func(i, j int) bool {
		a, b := keys[out[i].Path], keys[out[j].Path]
		switch mode {
		case internal.SortExt:
			if a.ext != b.ext {
				return a.ext < b.ext
			}
		case internal.SortSize:
			if a.size != b.size {
				return a.size > b.size
			}
		case internal.SortDate:
			if a.mtime != b.mtime {
				return a.mtime > b.mtime
			}
		case internal.SortCombo:
			if a.ext != b.ext {
				return a.ext < b.ext
			}
			if a.size != b.size {
				return a.size > b.size
			}
		}
		return a.name < b.name
	}

	sort.SliceStable(out, less)
	return out
}
