package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stargirl99/Cable/app"
	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/sorter"
)

// SortFunc 执行整理，进度通过回调报告
type SortFunc func(ctx context.Context, onProgress func(sorter.Progress)) (*sorter.Result, error)

var program *tea.Program

type teaModel struct {
	m *model
}

func (tm teaModel) Init() tea.Cmd {
	return tm.m.Init()
}

func (tm teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := tm.m.Update(msg)
	return tm, cmd
}

func (tm teaModel) View() string {
	return tm.m.View()
}

// Run 显示预览，确认后执行整理并显示结果。
// 用户在开始前退出时返回 nil 结果和 nil 错误
func Run(plan *app.Plan, sort SortFunc, autoStart bool) (*sorter.Result, error) {
	logger.Get().Debug().Msg("启动 TUI 界面")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := initialModel(plan, sort, ctx, cancel, autoStart)
	program = tea.NewProgram(teaModel{m: &m}, tea.WithAltScreen())

	_, err := program.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
		return nil, err
	}

	return m.result, m.err
}

// send 把消息投递给正在运行的程序
func send(msg tea.Msg) {
	if program != nil {
		program.Send(msg)
	}
}
