package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/soundboard/cmd/board/config"
	"github.com/gigurra/soundboard/cmd/common"
	"github.com/spf13/cobra"
)

type InitParams struct {
	Config string `short:"c" optional:"true" help:"Where to write the config (default: $XDG_CONFIG_HOME/soundboard/board.yaml)"`
	Dir    string `short:"d" optional:"true" help:"Clip directory to store in the config"`
	Force  bool   `short:"f" help:"Overwrite an existing config"`
}

func InitCmd() *cobra.Command {
	return boa.CmdT[InitParams]{
		Use:         "init",
		Short:       "Write the default board config",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *InitParams, cmd *cobra.Command, args []string) {
			path, err := runInit(params)
			common.ExitOnError("init", err)
			fmt.Printf("Wrote %s\n", path)
		},
	}.ToCobra()
}

func runInit(params *InitParams) (string, error) {
	path := configPath(params.Config)

	if _, err := os.Stat(path); err == nil && !params.Force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	cfg := config.Default()
	cfg.Dir = params.Dir
	if err := config.Save(path, cfg); err != nil {
		return "", err
	}
	return path, nil
}
