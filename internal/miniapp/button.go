package miniapp

import (
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/page"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/telegram/webapp"
)

// BindButton drives the main button progress indicator from the page load
// state. The returned function detaches it.
func BindButton(ctrl *page.Controller, b webapp.Bridge) func() {
	btn := b.MainButton()
	apply := func(s page.Snapshot) {
		if s.Loading() {
			btn.ShowProgress()
			return
		}
		btn.HideProgress()
	}
	apply(ctrl.Snapshot())
	return ctrl.Subscribe(apply)
}
