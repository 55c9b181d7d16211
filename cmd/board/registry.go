package board

import (
	"errors"
	"fmt"

	"github.com/gigurra/soundboard/cmd/board/channel"
	"github.com/gigurra/soundboard/cmd/board/config"
	"github.com/samber/lo"
)

var (
	ErrUnknownChannel = errors.New("unknown channel")
	ErrDuplicateID    = errors.New("duplicate channel id")
)

// Binding ties one channel id to its clip and its UI indicator.
type Binding struct {
	ID        string
	Locator   string
	Indicator channel.Indicator
}

// Board is the set of independent channels, addressed by id.
type Board struct {
	order    []string
	channels map[string]*channel.Channel
}

// New builds one channel per binding. All channels share the backend and
// the dispatcher; they share no other state.
func New(bindings []Binding, backend channel.Backend, dispatch channel.Dispatcher) (*Board, error) {
	if dups := lo.FindDuplicatesBy(bindings, func(b Binding) string { return b.ID }); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, dups[0].ID)
	}

	b := &Board{
		order:    make([]string, 0, len(bindings)),
		channels: make(map[string]*channel.Channel, len(bindings)),
	}
	for _, binding := range bindings {
		ch, err := channel.New(channel.Config{
			ID:        binding.ID,
			Locator:   binding.Locator,
			Backend:   backend,
			Dispatch:  dispatch,
			Indicator: binding.Indicator,
		})
		if err != nil {
			return nil, err
		}
		b.order = append(b.order, binding.ID)
		b.channels[binding.ID] = ch
	}
	return b, nil
}

// BindingsFor resolves every button of cfg against dir. indicatorFor is
// asked for the indicator of each button.
func BindingsFor(cfg *config.Config, dir string, indicatorFor func(id string) channel.Indicator) []Binding {
	return lo.Map(cfg.Buttons, func(btn config.Button, _ int) Binding {
		return Binding{
			ID:        btn.ID,
			Locator:   config.ClipPath(dir, btn),
			Indicator: indicatorFor(btn.ID),
		}
	})
}

// Toggle toggles the channel with the given id.
func (b *Board) Toggle(id string) error {
	ch, ok := b.channels[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, id)
	}
	ch.Toggle()
	return nil
}

// StopAll stops every playing channel. Idle channels are left alone.
func (b *Board) StopAll() {
	for _, id := range b.order {
		b.channels[id].Stop()
	}
}

// IDs returns channel ids in configuration order.
func (b *Board) IDs() []string {
	return append([]string(nil), b.order...)
}

// Channel returns the channel with the given id.
func (b *Board) Channel(id string) (*channel.Channel, bool) {
	ch, ok := b.channels[id]
	return ch, ok
}

// Statuses returns a snapshot of every channel in configuration order.
func (b *Board) Statuses() []channel.Status {
	return lo.Map(b.order, func(id string, _ int) channel.Status {
		return b.channels[id].Status()
	})
}

// Playing returns the ids of channels that are currently playing.
func (b *Board) Playing() []string {
	return lo.Filter(b.order, func(id string, _ int) bool {
		return b.channels[id].Playing()
	})
}
