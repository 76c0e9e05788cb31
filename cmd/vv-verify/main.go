// Command vv-verify runs differential validations of the vv-dsp
// command-line tools against trusted reference computations.
package main

import (
	"os"

	"github.com/vv-dsp/verify/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
