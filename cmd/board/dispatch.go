package board

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/soundboard/cmd/board/channel"
)

// dispatchMsg carries work that must run on the bubbletea event loop.
type dispatchMsg func()

// sender is the part of *tea.Program the dispatcher needs.
type sender interface {
	Send(msg tea.Msg)
}

// teaDispatcher posts work onto a bubbletea program. Work first goes
// through a Loop so Dispatch never blocks the channel that calls it, even
// before the program has started reading messages.
//
// The loop is never closed: once the program exits, Send drops messages,
// and late watchers of a process that is going down stay harmless.
type teaDispatcher struct {
	loop    *channel.Loop
	program sender
}

func newTeaDispatcher() *teaDispatcher {
	return &teaDispatcher{loop: channel.NewLoop()}
}

// attach sets the target program. Must happen before the first Dispatch.
func (d *teaDispatcher) attach(program sender) {
	d.program = program
}

func (d *teaDispatcher) Dispatch(fn func()) error {
	return d.loop.Dispatch(func() {
		d.program.Send(dispatchMsg(fn))
	})
}
