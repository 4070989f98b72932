package internal

import "time"

const (
	// 操作日志文件名，写在被整理的目录中
	OperationLogName = "sort_log.json"

	// 应用状态目录（配置、会话、历史数据库、锁文件）
	DefaultStateDir = "~/.cable"

	// 会话文件默认路径
	DefaultSessionPath = "~/.cable/session.toml"

	// 历史数据库默认路径
	DefaultDatabasePath = "~/.cable/history.db"

	// 监听模式的防抖窗口
	DefaultDebounce = 2 * time.Second

	// 监听模式处理文件的并发数
	DefaultWorkers = 4

	// 目录分类与未知分类的保留标识
	FoldersCategory = "folders"
	MiscCategory    = "misc"
	MiscFolder      = "Miscellaneous"
	FoldersFolder   = "Folders"
)
