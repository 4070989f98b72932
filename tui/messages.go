package tui

import (
	"github.com/stargirl99/Cable/pkg/sorter"
)

type progressMsg struct {
	progress sorter.Progress
}

type sortCompleteMsg struct {
	result *sorter.Result
	err    error
}
