package board

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/soundboard/cmd/board/audio"
	"github.com/gigurra/soundboard/cmd/board/channel"
	"github.com/gigurra/soundboard/cmd/board/config"
	"github.com/gigurra/soundboard/cmd/common"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Dir     string `pos:"true" optional:"true" help:"Directory holding the clips (overrides the config)"`
	Config  string `short:"c" optional:"true" help:"Path to the board config (default: $XDG_CONFIG_HOME/soundboard/board.yaml)"`
	Notify  bool   `short:"n" optional:"true" help:"Raise a desktop notification when a clip fails to play"`
	LogFile string `optional:"true" help:"Log file (default: $XDG_STATE_HOME/soundboard/soundboard.log)"`
	Verbose bool   `short:"v" optional:"true" help:"Log debug records"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:   "board",
		Short: "Open the interactive soundboard",
		Long: `Open the interactive soundboard in your terminal.

Every button plays one clip on its own channel. Pressing a button while
its clip is playing stops it. Clips end on their own and the button goes
dark again.

Controls:
  1-9 (or configured keys) - Toggle that button
  arrows / hjkl            - Move the selection
  ENTER or SPACE           - Toggle the selected button
  s or ESC                 - Stop everything
  q or Ctrl+C              - Quit`,
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.ExitOnError("board", runBoard(params))
		},
	}.ToCobra()
}

func runBoard(params *Params) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal, use 'soundboard play' for headless playback")
	}

	cfgPath := params.Config
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logFile := params.LogFile
	if logFile == "" {
		logFile = common.DefaultLogPath()
	}
	closeLog, err := common.SetupLogging(common.LogOptions{
		File:    logFile,
		Verbose: params.Verbose,
		Notify:  params.Notify || cfg.Notify,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()

	dir := cfg.ResolveDir(params.Dir)
	slog.Info("starting board", "config", cfgPath, "dir", dir, "buttons", len(cfg.Buttons))

	device, err := audio.OpenDevice(audio.Options{SampleRate: cfg.SampleRate})
	if err != nil {
		return err
	}
	defer device.Close()

	// Written only from Update, where dispatched indicators run
	lit := make(map[string]bool, len(cfg.Buttons))
	dispatch := newTeaDispatcher()
	bindings := BindingsFor(cfg, dir, func(id string) channel.Indicator {
		return func(on bool) { lit[id] = on }
	})
	b, err := New(bindings, device, dispatch)
	if err != nil {
		return err
	}

	paths := lo.SliceToMap(bindings, func(binding Binding) (string, string) {
		return binding.ID, binding.Locator
	})
	watcher, err := NewClipWatcher(lo.Values(paths))
	if err != nil {
		slog.Warn("clip availability will not update", "error", err)
		watcher = nil
	}

	p := tea.NewProgram(newModel(b, cfg.Buttons, paths, lit, watcher), tea.WithAltScreen())
	dispatch.attach(p)

	_, runErr := p.Run()

	b.StopAll()
	if watcher != nil {
		_ = watcher.Close()
	}
	slog.Info("board closed")
	return runErr
}
