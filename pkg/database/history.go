package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/hasher"
	"github.com/stargirl99/Cable/pkg/logger"
)

// HistoryRecord 一次文件操作的历史记录
type HistoryRecord struct {
	ID        int64     `gorm:"primaryKey"`
	RunID     string    `gorm:"index;not null"`
	Source    string    `gorm:"index;not null"`
	Action    string    `gorm:"not null"`
	FromPath  string    `gorm:"not null"`
	ToPath    string    `gorm:"not null"`
	Category  string
	Size      int64
	Hash      string
	CreatedAt time.Time `gorm:"index;not null"`
}

func (HistoryRecord) TableName() string {
	return "history"
}

// Store 历史数据库，实现 internal.Recorder
type Store struct {
	db *gorm.DB
	// Fs 用于计算目标文件的哈希，为空时不计算
	Fs afero.Fs
}

func NewStore(dbPath string) (*Store, error) {
	expandedPath, err := internal.ExpandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("初始化历史数据库，路径: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败: %w", err)
	}

	dsn := expandedPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&HistoryRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("创建数据库表失败: %w", err)
	}

	return &Store{db: db, Fs: afero.NewOsFs()}, nil
}

// Record 写入一条历史记录，移动/复制的记录附带目标文件哈希
func (s *Store) Record(ev internal.Event) error {
	rec := &HistoryRecord{
		RunID:     ev.RunID,
		Source:    string(ev.Source),
		Action:    string(ev.Action),
		FromPath:  ev.From,
		ToPath:    ev.To,
		Category:  ev.Category,
		Size:      ev.Size,
		CreatedAt: time.Now(),
	}
	if s.Fs != nil && (ev.Action == internal.ActionMove || ev.Action == internal.ActionCopy) {
		if info, err := s.Fs.Stat(ev.To); err == nil && info.Mode().IsRegular() {
			rec.Hash = hasher.HashString(s.Fs, ev.To)
		}
	}

	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("插入历史记录失败: %w", err)
	}
	logger.Get().Trace().Msgf("历史记录: %s %s -> %s", rec.Action, rec.FromPath, rec.ToPath)
	return nil
}

// Recent 按时间倒序返回最近 limit 条记录
func (s *Store) Recent(limit int) ([]HistoryRecord, error) {
	var records []HistoryRecord
	q := s.db.Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询历史记录失败: %w", err)
	}
	return records, nil
}

// Count 返回记录总数
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&HistoryRecord{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
