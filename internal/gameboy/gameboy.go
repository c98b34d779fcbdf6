// Package gameboy hosts the SM83 core. It wires the CPU, the memory
// bus, the cartridge and the peripherals together, and runs them.
package gameboy

import (
	"context"
	"fmt"
	io2 "io"
	"sync"
	"time"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/io"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// syncCycles is how many M-cycles Run executes between checks
// of the context and the wall clock, roughly one frame.
const syncCycles = cpu.MCycleSpeed / 60

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
//
// Step, RunFor and Run may be called from any goroutine; each
// instruction runs to completion before another caller gets in.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *io.Serial

	log.Logger

	peripherals []types.Peripheral
	bootROM     []byte
	serialOut   io2.Writer
	speed       float64

	cycles uint64
	mu     sync.Mutex
}

// NewGameBoy returns a new GameBoy running rom. Without a boot ROM
// the machine starts in the state the boot ROM leaves behind, at
// 0x0100.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
		speed:  1,
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.NewCartridge(rom, cartridge.WithLogger(g.Logger))
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}
	header := cart.Header()
	g.Infof("loaded %s (fingerprint %016x)", header.String(), header.Fingerprint)
	if !header.ChecksumValid() {
		g.Warnf("header checksum mismatch: got 0x%02X", header.HeaderChecksum)
	}

	g.Interrupts = interrupts.NewService()
	g.MMU = mmu.NewMMU(cart, g.Interrupts, g.Logger)
	g.Serial = io.NewSerial(g.MMU.IO(), g.serialOut, g.Logger)
	g.Timer = timer.NewController(g.MMU.IO(), g.Interrupts)
	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts)

	// the timer is stepped first, then any attached peripherals
	g.peripherals = append([]types.Peripheral{g.Timer}, g.peripherals...)

	if g.bootROM != nil {
		b, err := boot.LoadBootROM(g.bootROM)
		if err != nil {
			return nil, fmt.Errorf("gameboy: loading boot rom: %w", err)
		}
		g.Infof("using boot rom %s (%s)", b.Model(), b.Checksum())
		g.MMU.SetBootROM(b)
	} else {
		g.CPU.InitBootState()
		g.MMU.InitBootState()
	}

	return g, nil
}

// Cycles returns the number of M-cycles executed so far.
func (g *GameBoy) Cycles() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cycles
}

// Step services a pending interrupt if the IME is set, then
// executes a single instruction and steps the peripherals. It
// returns the number of M-cycles taken, or the fault that stopped
// the CPU.
func (g *GameBoy) Step() (uint8, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.step()
}

// RunFor steps until at least the given number of M-cycles have
// passed, returning how many did.
func (g *GameBoy) RunFor(cycles uint64) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var ran uint64
	for ran < cycles {
		n, err := g.step()
		if err != nil {
			return ran, err
		}
		ran += uint64(n)
	}
	return ran, nil
}

// Run steps until ctx is done or the CPU faults, pacing the
// emulation to the configured Speed. It returns ctx.Err() once the
// context ends.
func (g *GameBoy) Run(ctx context.Context) error {
	start := time.Now()
	var ran uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := g.RunFor(syncCycles)
		if err != nil {
			return err
		}
		ran += n

		if g.speed <= 0 {
			continue
		}
		target := time.Duration(float64(ran) / (cpu.MCycleSpeed * g.speed) * float64(time.Second))
		if wait := target - time.Since(start); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
}

func (g *GameBoy) step() (uint8, error) {
	var cycles uint8
	if g.Interrupts.IME {
		if vector, ok := g.Interrupts.Vector(); ok {
			n, err := g.CPU.Interrupt(vector)
			if err != nil {
				g.Errorf("fault servicing interrupt 0x%02X: %v", vector, err)
				return 0, err
			}
			cycles += n
		}
	}

	n, err := g.CPU.Step()
	if err != nil {
		g.Errorf("fault: %v", err)
		return 0, err
	}
	cycles += n

	for _, p := range g.peripherals {
		p.Step(cycles)
	}
	g.cycles += uint64(cycles)

	return cycles, nil
}
