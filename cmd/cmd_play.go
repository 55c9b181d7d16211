package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/soundboard/cmd/board"
	"github.com/gigurra/soundboard/cmd/board/audio"
	"github.com/gigurra/soundboard/cmd/board/channel"
	"github.com/gigurra/soundboard/cmd/board/config"
	"github.com/gigurra/soundboard/cmd/common"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type PlayParams struct {
	ID      string `pos:"true" help:"Button id to play"`
	Dir     string `short:"d" optional:"true" help:"Directory holding the clips (overrides the config)"`
	Config  string `short:"c" optional:"true" help:"Path to the board config"`
	Notify  bool   `short:"n" optional:"true" help:"Raise a desktop notification when the clip fails to play"`
	Verbose bool   `short:"v" optional:"true" help:"Log debug records"`
}

func PlayCmd() *cobra.Command {
	return boa.CmdT[PlayParams]{
		Use:   "play",
		Short: "Play one clip without the board UI",
		Long: `Play one button's clip and wait for it to finish.

Ctrl+C stops the clip early, just like pressing its button again.`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *PlayParams, cmd *cobra.Command, args []string) {
			common.ExitOnError("play", runPlay(params))
		},
	}.ToCobra()
}

// playOutcome tracks the indicator of the single played channel.
type playOutcome struct {
	once    sync.Once
	done    chan struct{}
	started bool
	ended   time.Time
}

func newPlayOutcome() *playOutcome {
	return &playOutcome{done: make(chan struct{})}
}

// indicator runs on the loop goroutine only.
func (o *playOutcome) indicator(on bool) {
	if on {
		o.started = true
		return
	}
	o.once.Do(func() {
		o.ended = time.Now()
		close(o.done)
	})
}

func runPlay(params *PlayParams) error {
	cfg, err := config.Load(configPath(params.Config))
	if err != nil {
		return err
	}

	closeLog, err := common.SetupLogging(common.LogOptions{
		Verbose: params.Verbose,
		Notify:  params.Notify || cfg.Notify,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	btn, ok := lo.Find(cfg.Buttons, func(b config.Button) bool { return b.ID == params.ID })
	if !ok {
		ids := lo.Map(cfg.Buttons, func(b config.Button, _ int) string { return b.ID })
		return fmt.Errorf("%w: %s (have %v)", board.ErrUnknownChannel, params.ID, ids)
	}

	device, err := audio.OpenDevice(audio.Options{SampleRate: cfg.SampleRate})
	if err != nil {
		return err
	}
	defer device.Close()

	loop := channel.NewLoop()
	defer loop.Close()

	outcome := newPlayOutcome()
	b, err := board.New([]board.Binding{{
		ID:        btn.ID,
		Locator:   config.ClipPath(cfg.ResolveDir(params.Dir), btn),
		Indicator: outcome.indicator,
	}}, device, loop)
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	start := time.Now()
	if err := b.Toggle(btn.ID); err != nil {
		return err
	}

	select {
	case <-outcome.done:
	case sig := <-sigCh:
		slog.Info("stopping clip", "channel", btn.ID, "signal", sig.String())
		b.StopAll()
		<-outcome.done
	}

	// Indicator work is ordered, so started is settled once done is closed
	if !outcome.started {
		return fmt.Errorf("failed to play %s", btn.ID)
	}
	slog.Info("clip ended", "channel", btn.ID, "played", outcome.ended.Sub(start).Round(time.Millisecond))
	return nil
}
