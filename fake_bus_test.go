package vl6180x

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

var errBus = errors.New("nack")

// busOp is one recorded register transaction
type busOp struct {
	write bool
	wide  bool
	reg   uint16
	val   uint16
}

func (o busOp) String() string {
	dir := "R"
	if o.write {
		dir = "W"
	}
	return fmt.Sprintf("%s 0x%03X=0x%X", dir, o.reg, o.val)
}

// fakeBus is an in-memory register file that records every transaction
type fakeBus struct {
	regs map[uint16]uint16

	// script holds values returned by successive reads before falling back
	// to regs
	script map[uint16][]uint16

	// failAt makes the access to a register return errBus
	failAt map[uint16]bool

	// bootErrors makes the first reads of SYSTEM_FRESH_OUT_OF_RESET fail
	bootErrors int

	ops []busOp

	readdressed []uint8
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		regs: map[uint16]uint16{
			SYSTEM_FRESH_OUT_OF_RESET: 0x01,
		},
		script: map[uint16][]uint16{},
		failAt: map[uint16]bool{},
	}
}

func (b *fakeBus) read(reg uint16, wide bool) (uint16, error) {
	if reg == SYSTEM_FRESH_OUT_OF_RESET && b.bootErrors > 0 {
		b.bootErrors--
		return 0, errBus
	}

	if b.failAt[reg] {
		return 0, errBus
	}

	val := b.regs[reg]

	if q := b.script[reg]; len(q) > 0 {
		val = q[0]
		b.script[reg] = q[1:]
	}

	b.ops = append(b.ops, busOp{reg: reg, val: val, wide: wide})

	return val, nil
}

func (b *fakeBus) write(reg uint16, val uint16, wide bool) error {
	if b.failAt[reg] {
		return errBus
	}

	b.ops = append(b.ops, busOp{write: true, reg: reg, val: val, wide: wide})
	b.regs[reg] = val

	return nil
}

func (b *fakeBus) Read8(reg uint16) (uint8, error) {
	v, err := b.read(reg, false)
	return uint8(v), err
}

func (b *fakeBus) Read16(reg uint16) (uint16, error) {
	return b.read(reg, true)
}

func (b *fakeBus) Write8(reg uint16, val uint8) error {
	return b.write(reg, uint16(val), false)
}

func (b *fakeBus) Write16(reg uint16, val uint16) error {
	return b.write(reg, val, true)
}

func (b *fakeBus) Readdress(addr uint8) error {
	b.readdressed = append(b.readdressed, addr)
	return nil
}

// count returns how many reads or writes touched reg
func (b *fakeBus) count(write bool, reg uint16) int {
	n := 0
	for _, o := range b.ops {
		if o.write == write && o.reg == reg {
			n++
		}
	}
	return n
}

// writes returns the write transactions in order
func (b *fakeBus) writes() []busOp {
	var w []busOp
	for _, o := range b.ops {
		if o.write {
			w = append(w, o)
		}
	}
	return w
}

func (b *fakeBus) reset() {
	b.ops = nil
}

// fakePin records the levels driven on it
type fakePin struct {
	levels []gpio.Level
	err    error
}

func (p *fakePin) Out(l gpio.Level) error {
	if p.err != nil {
		return p.err
	}
	p.levels = append(p.levels, l)
	return nil
}

// readyDevice returns an initialized device on a fake bus with the op log
// cleared
func readyDevice(cfg *Config) (*VL6180X, *fakeBus) {
	bus := newFakeBus()

	v, err := New(bus, cfg)

	if err != nil {
		panic(err)
	}

	bus.reset()

	return v, bus
}
