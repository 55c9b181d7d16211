// Package common holds helpers shared by the soundboard commands.
package common

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
)

func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// ExitOnError prints "<cmd>: <err>" to stderr and exits 1 when err is set.
func ExitOnError(cmdName string, err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", cmdName, err)
	os.Exit(1)
}
