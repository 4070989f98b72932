package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stargirl99/Cable/config"
	"github.com/stargirl99/Cable/pkg/logger"
)

var (
	cfgFile  string
	logLevel string
	logFile  string
	verbose  bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cable",
	Short: "按类型把目录中的文件整理到分类文件夹",
	Long: `cable 是一个命令行工具，按扩展名把目录中的文件整理到分类文件夹。

主要功能:
- 预览并整理目录的直接子项（不递归）
- 内容相同的文件自动跳过，同名文件自动编号
- 图片、视频、音频可按 年/月 归档
- 每次整理生成撤销日志，可一键还原
- 监听目录，新文件落定后自动整理`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件（默认 $HOME/.cable/config.yaml）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "日志文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示详细日志")
}

// setup 加载配置并初始化日志，所有子命令共用
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	opts := logger.Options{
		Level: cfg.Logging.Level,
		File:  cfg.Logging.File,
	}
	if logLevel != "" {
		opts.Level = logLevel
	}
	if logFile != "" {
		opts.File = logFile
	}
	if verbose {
		opts.Level = "debug"
	}
	logOpts = opts

	if err := logger.Init(opts); err != nil {
		return err
	}
	if cfg.ConfigFile != "" {
		logger.Get().Debug().Msgf("加载配置完成: %s", cfg.ConfigFile)
	}
	return nil
}

var logOpts logger.Options

// quietConsole 关闭控制台日志，TUI 占用终端时使用
func quietConsole() error {
	opts := logOpts
	opts.Quiet = true
	return logger.Init(opts)
}
