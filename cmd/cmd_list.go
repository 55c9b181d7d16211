package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/soundboard/cmd/board"
	"github.com/gigurra/soundboard/cmd/board/audio"
	"github.com/gigurra/soundboard/cmd/board/config"
	"github.com/gigurra/soundboard/cmd/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type ListParams struct {
	Dir    string `pos:"true" optional:"true" help:"Directory holding the clips (overrides the config)"`
	Config string `short:"c" optional:"true" help:"Path to the board config"`
	JSON   bool   `long:"json" help:"Output as JSON"`
}

// clipEntry is one row of the listing.
type clipEntry struct {
	Key      string `json:"key,omitempty"`
	ID       string `json:"id"`
	Label    string `json:"label"`
	Path     string `json:"path"`
	Present  bool   `json:"present"`
	Duration string `json:"duration,omitempty"`
}

func ListCmd() *cobra.Command {
	return boa.CmdT[ListParams]{
		Use:         "list",
		Aliases:     []string{"ls"},
		Short:       "List the board's buttons and whether their clips exist",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ListParams, cmd *cobra.Command, args []string) {
			common.ExitOnError("list", runList(params, os.Stdout))
		},
	}.ToCobra()
}

func runList(params *ListParams, out io.Writer) error {
	cfg, err := config.Load(configPath(params.Config))
	if err != nil {
		return err
	}
	entries := listClips(cfg, cfg.ResolveDir(params.Dir))

	if params.JSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	renderClipTable(out, entries, getTermWidth())
	return nil
}

func listClips(cfg *config.Config, dir string) []clipEntry {
	return lo.Map(cfg.Buttons, func(btn config.Button, _ int) clipEntry {
		path := config.ClipPath(dir, btn)
		entry := clipEntry{
			Key:     btn.Key,
			ID:      btn.ID,
			Label:   btn.Title(),
			Path:    path,
			Present: board.ClipPresent(path),
		}
		if entry.Present {
			if d, err := audio.Probe(path); err == nil {
				entry.Duration = d.Round(100 * time.Millisecond).String()
			}
		}
		return entry
	})
}

func renderClipTable(out io.Writer, entries []clipEntry, width int) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(width)

	t.AppendHeader(table.Row{"Key", "ID", "Label", "Length", "Clip"})
	for _, e := range entries {
		clip := text.FgGreen.Sprint(e.Path)
		if !e.Present {
			clip = text.FgRed.Sprint(e.Path + " (missing)")
		}
		length := e.Duration
		if e.Present && length == "" {
			length = "?"
		}
		t.AppendRow(table.Row{e.Key, e.ID, e.Label, length, clip})
	}
	t.Render()

	missing := lo.CountBy(entries, func(e clipEntry) bool { return !e.Present })
	if missing > 0 {
		_, _ = fmt.Fprintf(out, "\n%d of %d clips missing\n", missing, len(entries))
	}
}

func configPath(flag string) string {
	if flag != "" {
		return flag
	}
	return config.DefaultPath()
}

func getTermWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 120
}
