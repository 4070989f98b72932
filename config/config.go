package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/stargirl99/Cable/internal"
	"github.com/stargirl99/Cable/pkg/classifier"
)

// CategoryConfig 配置文件中的一个分类
type CategoryConfig struct {
	ID         string   `mapstructure:"id"`
	Folder     string   `mapstructure:"folder"`
	Icon       string   `mapstructure:"icon"`
	Color      string   `mapstructure:"color"`
	Extensions []string `mapstructure:"extensions"`
}

type Config struct {
	Categories       []CategoryConfig  `mapstructure:"categories"`
	DefaultsMap      map[string]string `mapstructure:"defaults_map"`
	DefaultsFallback string            `mapstructure:"defaults_fallback"`
	DateMediaCats    []string          `mapstructure:"date_media_cats"`
	Session          internal.Session  `mapstructure:"session"`
	SessionFile      string            `mapstructure:"session_file"`
	StateDir         string            `mapstructure:"state_dir"`
	Watch            struct {
		Debounce time.Duration `mapstructure:"debounce"`
		Workers  int           `mapstructure:"workers"`
	} `mapstructure:"watch"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Logging struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`

	// ConfigFile 实际读取的配置文件，未找到时为空
	ConfigFile string `mapstructure:"-"`
}

var cfg Config

// Load 读取配置文件。cfgFile 为空时在 $HOME/.cable、当前目录、/etc/cable 中查找 config.yaml
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("$HOME/.cable")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/cable")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	c.ConfigFile = v.ConfigFileUsed()

	if !v.IsSet("categories") || len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
	}
	if !v.IsSet("defaults_map") {
		c.DefaultsMap = DefaultDefaultsMap()
	}
	if !v.IsSet("date_media_cats") {
		c.DateMediaCats = DefaultDateMediaCats()
	}
	c.Session = c.Session.Normalize()
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = internal.DefaultDebounce
	}
	if c.Watch.Workers <= 0 {
		c.Watch.Workers = internal.DefaultWorkers
	}

	c.StateDir = internal.MustExpandPath(c.StateDir)
	c.SessionFile = internal.MustExpandPath(c.SessionFile)
	c.Database.Path = internal.MustExpandPath(c.Database.Path)
	if c.Logging.File != "" {
		c.Logging.File = internal.MustExpandPath(c.Logging.File)
	}

	cfg = c
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := internal.DefaultSession()

	v.SetDefault("defaults_fallback", DefaultDefaultsFallback)
	v.SetDefault("state_dir", internal.DefaultStateDir)
	v.SetDefault("session_file", internal.DefaultSessionPath)
	v.SetDefault("database.path", internal.DefaultDatabasePath)
	v.SetDefault("watch.debounce", internal.DefaultDebounce)
	v.SetDefault("watch.workers", internal.DefaultWorkers)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")

	v.SetDefault("session.run_mode", string(def.RunMode))
	v.SetDefault("session.sort_mode", string(def.SortMode))
	v.SetDefault("session.copy_mode", def.CopyMode)
	v.SetDefault("session.date_subfolders", def.DateSubfolders)
	v.SetDefault("session.dest_mode", string(def.DestMode))
	v.SetDefault("session.dest_custom", def.DestCustom)
	v.SetDefault("session.exclude_patterns", def.ExcludePatterns)
	v.SetDefault("session.sniff_content", def.SniffContent)
	v.SetDefault("session.date_source", string(def.DateSource))
	v.SetDefault("session.notify", def.Notify)
}

func Get() *Config {
	return &cfg
}

// Registry 根据分类配置构造分类表
func (c *Config) Registry() *classifier.Registry {
	categories := make([]classifier.Category, 0, len(c.Categories))
	for _, cc := range c.Categories {
		categories = append(categories, classifier.Category{
			ID:         cc.ID,
			Folder:     cc.Folder,
			Icon:       cc.Icon,
			Color:      cc.Color,
			Extensions: cc.Extensions,
		})
	}
	return classifier.NewRegistry(categories, c.DateMediaCats)
}

// LockDir 监听锁文件所在目录
func (c *Config) LockDir() string {
	return filepath.Join(c.StateDir, "locks")
}

// SessionProvider 返回读写会话文件的 Provider，以配置中的 session 作为基础值
func (c *Config) SessionProvider() *Provider {
	return NewProvider(c.SessionFile, c.Session)
}
