// Command buoybuild turns a builder script into a vehicle file.
//
// The script is read from the given file, or standard input, one command per line. See
// builder.Builder.Exec for the commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/buoy/builder"
	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/logging"
	"github.com/akmonengine/buoy/vehiclefile"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	output   = flag.StringP("output", "o", "", "vehicle file to write (prints the layout when empty)")
	name     = flag.StringP("name", "n", "vehicle", "vehicle name")
	density  = flag.Float64("density", 0, "block density stored in the file (0 keeps the configured one)")
	logLevel = flag.String("log-level", "info", "log level")
)

func main() {
	flag.Parse()

	logger, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, "buoybuild:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		if errors.Is(err, builder.ErrNoBlocks) {
			logger.Warn("nothing to export, place at least one block")
		} else {
			logger.Error("build failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		fh, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer fh.Close()
		in = fh
	}

	b := builder.New()
	if err := b.Run(in); err != nil {
		return err
	}

	occupancy, err := b.Export()
	if err != nil {
		return err
	}

	f := vehiclefile.New(*name, occupancy)
	f.BlockDensity = *density

	physics := config.Default().Physics
	v, err := f.Vehicle(physics)
	if err != nil {
		return err
	}

	logger.Info("vehicle built",
		zap.String("name", f.Name),
		zap.Int("blocks", b.Len()),
		zap.Int("volume", occupancy.Len()),
		zap.Float64("mass", v.Body.Mass.Total),
		zap.Float64("secureHeight", v.SecureHeight),
		zap.String("fingerprint", f.Fingerprint),
	)

	if *output == "" {
		return vehiclefile.Write(os.Stdout, f)
	}

	return vehiclefile.Save(*output, f)
}
