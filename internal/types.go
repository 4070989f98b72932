package internal

import (
	"fmt"
	"strings"
)

// 运行模式
type RunMode string

const (
	RunOnce  RunMode = "once"
	RunWatch RunMode = "watch"
)

// 预览/处理顺序
type SortMode string

const (
	SortAlpha SortMode = "alpha"
	SortExt   SortMode = "ext"
	SortSize  SortMode = "size"
	SortDate  SortMode = "date"
	SortCombo SortMode = "combo"
)

// 目标目录模式
type DestMode string

const (
	DestHere     DestMode = "here"
	DestDefaults DestMode = "defaults"
	DestWhere    DestMode = "where"
)

// 日期子目录的时间来源
type DateSource string

const (
	DateFromMtime DateSource = "mtime"
	DateFromExif  DateSource = "exif"
)

// 操作类型（写入操作日志和历史记录）
type Action string

const (
	ActionMove      Action = "move"
	ActionCopy      Action = "copy"
	ActionDuplicate Action = "duplicate"
	ActionRestore   Action = "restore"
)

// Session 一次运行的会话选项
type Session struct {
	RunMode         RunMode    `mapstructure:"run_mode" toml:"run_mode"`
	SortMode        SortMode   `mapstructure:"sort_mode" toml:"sort_mode"`
	CopyMode        bool       `mapstructure:"copy_mode" toml:"copy_mode"`
	DateSubfolders  bool       `mapstructure:"date_subfolders" toml:"date_subfolders"`
	DestMode        DestMode   `mapstructure:"dest_mode" toml:"dest_mode"`
	DestCustom      string     `mapstructure:"dest_custom" toml:"dest_custom"`
	ExcludePatterns []string   `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
	SniffContent    bool       `mapstructure:"sniff_content" toml:"sniff_content"`
	DateSource      DateSource `mapstructure:"date_source" toml:"date_source"`
	Notify          bool       `mapstructure:"notify" toml:"notify"`
}

// DefaultSession 返回内置的默认会话选项
func DefaultSession() Session {
	return Session{
		RunMode:         RunOnce,
		SortMode:        SortAlpha,
		DestMode:        DestHere,
		DateSource:      DateFromMtime,
		ExcludePatterns: []string{"desktop.ini", "*.tmp", "Thumbs.db"},
	}
}

// Normalize 规范化各枚举字段，未知取值回退到默认值；DestCustom 展开 ~ 和环境变量
func (s Session) Normalize() Session {
	if m, err := ParseRunMode(string(s.RunMode)); err == nil {
		s.RunMode = m
	} else {
		s.RunMode = RunOnce
	}
	if m, err := ParseSortMode(string(s.SortMode)); err == nil {
		s.SortMode = m
	} else {
		s.SortMode = SortAlpha
	}
	if m, err := ParseDestMode(string(s.DestMode)); err == nil {
		s.DestMode = m
	} else {
		s.DestMode = DestHere
	}
	if s.DateSource != DateFromExif {
		s.DateSource = DateFromMtime
	}
	if s.DestCustom != "" {
		s.DestCustom = MustExpandPath(s.DestCustom)
	}
	return s
}

func ParseRunMode(s string) (RunMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "once":
		return RunOnce, nil
	case "2", "watch":
		return RunWatch, nil
	}
	return "", fmt.Errorf("无效的运行模式: %q", s)
}

// ParseSortMode 同时接受别名 name / extension / recency
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alpha", "name":
		return SortAlpha, nil
	case "ext", "extension":
		return SortExt, nil
	case "size":
		return SortSize, nil
	case "date", "recency":
		return SortDate, nil
	case "combo":
		return SortCombo, nil
	}
	return "", fmt.Errorf("无效的排序方式: %q", s)
}

func ParseDestMode(s string) (DestMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "here":
		return DestHere, nil
	case "defaults":
		return DestDefaults, nil
	case "where":
		return DestWhere, nil
	}
	return "", fmt.Errorf("无效的目标模式: %q", s)
}
