package app

import (
	"github.com/gen2brain/beeep"
)

// DesktopNotifier 通过系统通知中心提示已整理的文件
type DesktopNotifier struct {
	AppName string
}

func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{AppName: "cable"}
}

func (n *DesktopNotifier) Notify(title, message string) error {
	beeep.AppName = n.AppName
	return beeep.Notify(title, message, "")
}
