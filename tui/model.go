package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/stargirl99/Cable/app"
	"github.com/stargirl99/Cable/pkg/sorter"
)

type State int

const (
	StatePreview State = iota
	StateSorting
	StateComplete
)

type model struct {
	state     State
	plan      *app.Plan
	sort      SortFunc
	ctx       context.Context
	cancel    context.CancelFunc
	autoStart bool

	previewList list.Model
	progressBar progress.Model
	spinner     spinner.Model

	done        int
	total       int
	currentFile string
	result      *sorter.Result
	err         error
	started     time.Time
}

func initialModel(plan *app.Plan, sort SortFunc, ctx context.Context, cancel context.CancelFunc, autoStart bool) model {
	items := make([]list.Item, 0, len(plan.Items))
	for _, it := range plan.Items {
		items = append(items, planItem{item: it, target: plan.Target})
	}

	previewList := list.New(items, list.NewDefaultDelegate(), 0, 12)
	previewList.Title = fmt.Sprintf("待整理: %s（%d 项）", plan.Target, len(plan.Items))
	previewList.SetShowStatusBar(false)
	previewList.SetFilteringEnabled(false)
	previewList.Styles.Title = headingStyle

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.PercentageStyle = accentStyle.Width(4)

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = accentStyle

	return model{
		state:       StatePreview,
		plan:        plan,
		sort:        sort,
		ctx:         ctx,
		cancel:      cancel,
		autoStart:   autoStart,
		previewList: previewList,
		progressBar: progressBar,
		spinner:     s,
		total:       len(plan.Items),
	}
}

func (m *model) Init() tea.Cmd {
	if m.autoStart {
		return m.startSorting()
	}
	return nil
}

type planItem struct {
	item   app.PlanItem
	target string
}

func (p planItem) Title() string {
	return p.item.Category.Icon + " " + p.item.Entry.Name
}

func (p planItem) Description() string {
	return fmt.Sprintf("→ %s  %s", app.RelDir(p.target, p.item.Dir), humanize.Bytes(uint64(p.item.Entry.Size)))
}

func (p planItem) FilterValue() string { return p.item.Entry.Name }
