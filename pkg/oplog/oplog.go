package oplog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/logger"
)

// TimestampLayout 本地时间，精确到秒
const TimestampLayout = "2006-01-02T15:04:05"

// ModeMove 唯一可撤销的日志模式
const ModeMove = "move"

var (
	// ErrNotFound 目录中没有操作日志
	ErrNotFound = errors.New("操作日志不存在")
	// ErrCorrupt 操作日志无法解析
	ErrCorrupt = errors.New("操作日志已损坏")
)

// Op 一次已完成的移动
type Op struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// Log 一次批量整理的操作日志
type Log struct {
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
	Mode      string `json:"mode"`
	Ops       []Op   `json:"ops"`
}

// New 创建一条新的移动日志
func New(ops []Op) *Log {
	if ops == nil {
		ops = []Op{}
	}
	return &Log{
		ID:        uuid.New().String(),
		Timestamp: time.Now().Format(TimestampLayout),
		Mode:      ModeMove,
		Ops:       ops,
	}
}

// Path 返回目录中的操作日志路径
func Path(dir string) string {
	return filepath.Join(dir, internal.OperationLogName)
}

// Write 写入操作日志，覆盖旧日志
func Write(fs afero.Fs, dir string, l *Log) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化操作日志失败: %w", err)
	}
	if err := afero.WriteFile(fs, Path(dir), data, 0644); err != nil {
		return fmt.Errorf("写入操作日志失败: %w", err)
	}
	logger.Get().Debug().Msgf("操作日志已写入: %s（%d 条记录）", Path(dir), len(l.Ops))
	return nil
}

// Read 读取操作日志
func Read(fs afero.Fs, dir string) (*Log, error) {
	data, err := afero.ReadFile(fs, Path(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("读取操作日志失败: %w", err)
	}

	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for _, op := range l.Ops {
		if op.Src == "" || op.Dst == "" {
			return nil, fmt.Errorf("%w: 记录缺少 src 或 dst", ErrCorrupt)
		}
	}
	return &l, nil
}

// Remove 删除操作日志，日志不存在不算错误
func Remove(fs afero.Fs, dir string) error {
	if err := fs.Remove(Path(dir)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("删除操作日志失败: %w", err)
	}
	return nil
}

// Exists 目录中是否存在操作日志
func Exists(fs afero.Fs, dir string) bool {
	ok, err := afero.Exists(fs, Path(dir))
	return err == nil && ok
}
