package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/soundboard/cmd"
	"github.com/gigurra/soundboard/cmd/board"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "soundboard",
		Short:   "A terminal soundboard: one key, one clip, one channel",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			board.Cmd(),
			cmd.ListCmd(),
			cmd.PlayCmd(),
			cmd.InitCmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
