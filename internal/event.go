package internal

// 历史记录的来源
type Source string

const (
	SourceBatch Source = "batch"
	SourceWatch Source = "watch"
	SourceUndo  Source = "undo"
)

// Event 一次文件操作，由整理、监听和撤销产生
type Event struct {
	RunID    string
	Source   Source
	Action   Action
	From     string
	To       string
	Category string
	Size     int64
}

// Recorder 接收文件操作事件（例如写入历史数据库）
type Recorder interface {
	Record(ev Event) error
}
