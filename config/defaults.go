package config

// DefaultCategories 内置分类表，配置文件中没有 categories 时使用
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{
			ID:     "folders",
			Folder: "Folders",
			Icon:   "📁",
			Color:  "#fbbf24",
		},
		{
			ID:     "notepads",
			Folder: "Notepads",
			Icon:   "📄",
			Color:  "#e5e7eb",
			Extensions: []string{".txt", ".md", ".markdown", ".log", ".ini",
				".cfg", ".conf", ".nfo", ".rtf", ".csv"},
		},
		{
			ID:     "executables",
			Folder: "Executables",
			Icon:   "⚙️",
			Color:  "#f87171",
			Extensions: []string{".exe", ".msi", ".bat", ".cmd", ".ps1",
				".vbs", ".sh", ".com", ".pif", ".scr", ".appx", ".msix"},
		},
		{
			ID:     "archives",
			Folder: "Archives",
			Icon:   "🗜️",
			Color:  "#67e8f9",
			Extensions: []string{".rar", ".zip", ".7z", ".tar", ".gz",
				".bz2", ".xz", ".iso", ".cab", ".lz", ".lzma", ".zst"},
		},
		{
			ID:     "documents",
			Folder: "Documents",
			Icon:   "📑",
			Color:  "#93c5fd",
			Extensions: []string{".pdf", ".docx", ".doc", ".xlsx", ".xls",
				".pptx", ".ppt", ".odt", ".ods", ".odp",
				".pages", ".numbers", ".key", ".epub", ".mobi"},
		},
		{
			ID:     "code",
			Folder: "Code",
			Icon:   "💻",
			Color:  "#6ee7b7",
			Extensions: []string{".py", ".js", ".ts", ".jsx", ".tsx", ".html",
				".css", ".scss", ".sass", ".java", ".c", ".cpp",
				".h", ".hpp", ".cs", ".php", ".rb", ".go", ".rs",
				".swift", ".kt", ".json", ".xml", ".yaml", ".yml",
				".toml", ".sql", ".lua", ".r", ".m", ".asm",
				".dart", ".vue"},
		},
		{
			ID:         "shortcuts",
			Folder:     "Shortcuts",
			Icon:       "🔗",
			Color:      "#a5f3fc",
			Extensions: []string{".lnk", ".url", ".webloc"},
		},
		{
			ID:     "images",
			Folder: "Media/Images",
			Icon:   "🖼️",
			Color:  "#f0abfc",
			Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg",
				".webp", ".ico", ".tiff", ".tif", ".heic", ".heif",
				".raw", ".cr2", ".nef", ".psd", ".ai", ".xcf"},
		},
		{
			ID:     "video",
			Folder: "Media/Video",
			Icon:   "🎬",
			Color:  "#fde68a",
			Extensions: []string{".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv",
				".webm", ".m4v", ".3gp", ".ts", ".vob", ".rmvb", ".asf"},
		},
		{
			ID:     "sound",
			Folder: "Media/Sound",
			Icon:   "🔊",
			Color:  "#a5b4fc",
			Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma",
				".m4a", ".opus", ".alac", ".aiff", ".mid", ".midi"},
		},
	}
}

// DefaultDefaultsMap defaults 模式下各分类的系统目录
func DefaultDefaultsMap() map[string]string {
	return map[string]string{
		"images":    "~/Pictures",
		"video":     "~/Videos",
		"sound":     "~/Music",
		"documents": "~/Documents",
		"notepads":  "~/Documents",
		"code":      "~/Documents",
		"folders":   "~/Documents",
	}
}

const DefaultDefaultsFallback = "~/Downloads"

// DefaultDateMediaCats 开启日期子目录时按 年/月 归档的分类
func DefaultDateMediaCats() []string {
	return []string{"images", "video", "sound"}
}
