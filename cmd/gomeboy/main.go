// Command gomeboy runs a Game Boy ROM headlessly, printing anything the
// ROM sends over the serial port to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	cycles := flag.Uint64("cycles", 0, "The number of M-cycles to run for, 0 runs until interrupted")
	logLevel := flag.String("log-level", "info", "The log level. Can be debug, info, warn or error")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at, 0 runs unthrottled")
	flag.Parse()

	logger, err := log.NewWithLevel(*logLevel)
	if err != nil {
		logger = log.New()
		logger.Fatalf("invalid log level %q: %v", *logLevel, err)
	}

	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	// open the rom file
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatalf("unable to load rom: %v", err)
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithSerialOutput(os.Stdout),
		gameboy.Speed(*speed),
	}
	// open the boot rom file
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatalf("unable to load boot rom: %v", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	if *cycles > 0 {
		if _, err := gb.RunFor(*cycles); err != nil {
			logger.Fatal(err)
		}
		logger.Infof("ran for %d M-cycles, PC=0x%04X", gb.Cycles(), gb.CPU.PC)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := gb.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal(err)
	}
	logger.Infof("stopped after %d M-cycles", gb.Cycles())
}
