package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigurra/soundboard/cmd/board/config"
)

func TestListClips(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "horn.wav"), []byte("not really audio"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Buttons: []config.Button{
		{ID: "horn", Label: "Air Horn", File: "horn.wav", Key: "h"},
		{ID: "applause", File: "applause.mp3"},
	}}

	entries := listClips(cfg, dir)
	if len(entries) != 2 {
		t.Fatalf("len = %d", len(entries))
	}

	horn := entries[0]
	if !horn.Present || horn.Key != "h" || horn.Label != "Air Horn" {
		t.Errorf("horn = %+v", horn)
	}
	// Present but undecodable clips have no duration
	if horn.Duration != "" {
		t.Errorf("horn duration = %q, want empty", horn.Duration)
	}

	applause := entries[1]
	if applause.Present || applause.Label != "applause" {
		t.Errorf("applause = %+v", applause)
	}
	if applause.Path != filepath.Join(dir, "applause.mp3") {
		t.Errorf("applause path = %q", applause.Path)
	}
}

func TestRenderClipTable(t *testing.T) {
	entries := []clipEntry{
		{Key: "1", ID: "opening_procession", Label: "Opening Procession", Path: "/clips/opening_procession.mp3", Present: true, Duration: "3m2s"},
		{Key: "2", ID: "national_anthem", Label: "National Anthem", Path: "/clips/national_anthem.mp3"},
	}

	var buf bytes.Buffer
	renderClipTable(&buf, entries, 200)
	out := buf.String()

	for _, want := range []string{"opening_procession", "3m2s", "National Anthem", "(missing)", "1 of 2 clips missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q:\n%s", want, out)
		}
	}
}

func TestRunList_JSON(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "board.yaml")
	if err := config.Save(cfgPath, config.Default()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := runList(&ListParams{Config: cfgPath, Dir: t.TempDir(), JSON: true}, &buf); err != nil {
		t.Fatalf("runList() error = %v", err)
	}

	var entries []clipEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(entries) != 9 || entries[8].ID != "rimshot4" || entries[8].Present {
		t.Errorf("entries = %+v", entries)
	}
}
