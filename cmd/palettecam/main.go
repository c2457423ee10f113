// Palettecam - colour palettes from images and camera samples
//
// Palettecam reduces an image, or a dump of sampled pixels, to a short
// list of representative colours using a histogram, median-cut or
// cluster-split reducer.
package main

import (
	"os"

	"github.com/jmylchreest/palettecam/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
