package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stargirl99/Cable/pkg/logger"
	"github.com/stargirl99/Cable/pkg/sorter"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			// 整理过程中取消，等待引擎在下一个条目前停止
			m.cancel()
			if m.state != StateSorting {
				return m, tea.Quit
			}
			return m, nil
		case "q", "esc":
			if m.state != StateSorting {
				return m, tea.Quit
			}
		case "enter", "y":
			switch m.state {
			case StatePreview:
				if len(m.plan.Items) == 0 {
					return m, tea.Quit
				}
				return m, m.startSorting()
			case StateComplete:
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case progressMsg:
		m.done = msg.progress.Done
		m.currentFile = msg.progress.Entry.Name
		if m.total > 0 {
			cmds = append(cmds, m.progressBar.SetPercent(float64(m.done)/float64(m.total)))
		}
		return m, tea.Batch(cmds...)

	case sortCompleteMsg:
		m.state = StateComplete
		m.result = msg.result
		m.err = msg.err
		if msg.err != nil {
			logger.Get().Warn().Err(msg.err).Msg("整理未完成")
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == StateSorting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.state {
	case StatePreview:
		var cmd tea.Cmd
		m.previewList, cmd = m.previewList.Update(msg)
		cmds = append(cmds, cmd)
	case StateSorting:
		model, cmd := m.progressBar.Update(msg)
		m.progressBar = model.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.previewList.SetWidth(msg.Width - 4)
	if h := msg.Height - 10; h > 5 {
		m.previewList.SetHeight(h)
	}
	m.progressBar.Width = msg.Width - 10
}

func (m *model) startSorting() tea.Cmd {
	m.state = StateSorting
	m.started = time.Now()
	return tea.Batch(m.spinner.Tick, sortCmd(m.ctx, m.sort))
}

func sortCmd(ctx context.Context, sort SortFunc) tea.Cmd {
	return func() tea.Msg {
		result, err := sort(ctx, func(p sorter.Progress) {
			send(progressMsg{progress: p})
		})
		return sortCompleteMsg{result: result, err: err}
	}
}
