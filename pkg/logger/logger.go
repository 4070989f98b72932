package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

var Logger *zerolog.Logger

// Options 日志初始化参数
type Options struct {
	Level string // "trace", "debug", "info", "warn", "error"
	File  string // 日志文件路径，为空时仅输出到控制台
	// Quiet 为 true 时不输出到控制台，只写日志文件
	Quiet bool
}

// ParseLevel 解析日志级别，未知取值按 info 处理
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init 初始化 zerolog 日志
func Init(opts Options) error {
	var writers []io.Writer

	if !opts.Quiet {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return err
		}
		fileWriter, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		// 文件中使用无颜色的控制台格式，便于直接查看
		writers = append(writers, zerolog.ConsoleWriter{Out: fileWriter, NoColor: true, TimeFormat: "2006-01-02 15:04:05"})
	}

	var output io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		output = writers[0]
	default:
		output = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(ParseLevel(opts.Level))
	Logger = &logger
	return nil
}

// Set 替换全局 logger（测试中使用）
func Set(l zerolog.Logger) {
	Logger = &l
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}
