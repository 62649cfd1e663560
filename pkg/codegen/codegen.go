// Package codegen builds Z80 machine-code images in memory.
//
// A CodeGen session owns a growing byte buffer, a label table and a
// ledger of pending fixups. Code is emitted in program order through
// one method per instruction form; operands that name a label are
// routed through the fixup ledger and patched by ResolveFixups once
// every label is defined, so labels may be referenced before they
// exist.
package codegen

import "fmt"

// RomConfig describes where the generated image lives in the target
// address space.
type RomConfig struct {
	// Org is the address the first emitted byte maps to.
	Org uint16
	// StackTop is the initial stack pointer used by EmitStartup.
	StackTop uint16
	// RAMStart is the first address of writable memory. The generator
	// never touches it; it is carried so ROM-building code has one
	// place to read it from.
	RAMStart uint16
}

// DefaultConfig returns the standard RetroShield memory map: ROM at
// 0x0000, RAM from 0x2000, stack descending from 0x3FFF.
func DefaultConfig() RomConfig {
	return RomConfig{
		Org:      0x0000,
		StackTop: 0x3FFF,
		RAMStart: 0x2000,
	}
}

type fixupKind int

const (
	// fixupAbsWord patches two bytes with the target address, little-endian.
	fixupAbsWord fixupKind = iota
	// fixupRelByte patches one byte with a signed displacement measured
	// from the address immediately after the displacement byte.
	fixupRelByte
)

type fixup struct {
	offset int    // buffer offset of the byte(s) to patch
	label  string // target label
	kind   fixupKind
	from   uint16 // next-instruction address, fixupRelByte only
}

type ledgerState int

const (
	ledgerOpen ledgerState = iota
	ledgerResolved
	ledgerFailed
)

// CodeGen is a single code-generation session. It is not safe for
// concurrent use; one session builds one image.
type CodeGen struct {
	rom    []byte
	labels map[string]uint16
	fixups []fixup
	config RomConfig

	state      ledgerState
	resolveErr error

	uniqueCounter int
}

// New creates a session with the default RetroShield memory map.
func New() *CodeGen {
	return WithConfig(DefaultConfig())
}

// WithConfig creates a session with a custom memory map.
func WithConfig(config RomConfig) *CodeGen {
	return &CodeGen{
		labels: make(map[string]uint16),
		config: config,
	}
}

// Config returns the session's memory map.
func (g *CodeGen) Config() RomConfig {
	return g.config
}

// Pos returns the address the next emitted byte will map to.
func (g *CodeGen) Pos() uint16 {
	return g.config.Org + uint16(len(g.rom))
}

// Size returns the number of bytes emitted so far.
func (g *CodeGen) Size() int {
	return len(g.rom)
}

// ROM returns the emitted bytes. The slice aliases the session buffer;
// callers must not modify it. Only trust the contents after a
// successful ResolveFixups.
func (g *CodeGen) ROM() []byte {
	return g.rom
}

// Emit appends raw bytes verbatim.
func (g *CodeGen) Emit(b ...byte) {
	g.rom = append(g.rom, b...)
}

// EmitByte appends a single byte.
func (g *CodeGen) EmitByte(b byte) {
	g.rom = append(g.rom, b)
}

// EmitWord appends a 16-bit word, little-endian.
func (g *CodeGen) EmitWord(w uint16) {
	g.rom = append(g.rom, byte(w), byte(w>>8))
}

// EmitString appends the bytes of s followed by a NUL terminator.
func (g *CodeGen) EmitString(s string) {
	g.rom = append(g.rom, s...)
	g.rom = append(g.rom, 0)
}

// EmitStringRaw appends the bytes of s with no terminator.
func (g *CodeGen) EmitStringRaw(s string) {
	g.rom = append(g.rom, s...)
}

// Label binds name to the current position. A label binds exactly
// once; a second definition of the same name fails.
func (g *CodeGen) Label(name string) error {
	if _, exists := g.labels[name]; exists {
		return &DuplicateLabelError{Name: name}
	}
	g.labels[name] = g.Pos()
	return nil
}

// HasLabel reports whether name has been defined.
func (g *CodeGen) HasLabel(name string) bool {
	_, ok := g.labels[name]
	return ok
}

// LabelAddr returns the address bound to name, if defined.
func (g *CodeGen) LabelAddr(name string) (uint16, bool) {
	addr, ok := g.labels[name]
	return addr, ok
}

// UniqueLabel returns a label name that no other UniqueLabel call on
// this session will return. It does not define the label.
func (g *CodeGen) UniqueLabel(prefix string) string {
	g.uniqueCounter++
	return fmt.Sprintf("_%s_%d", prefix, g.uniqueCounter)
}

// StringConst defines a label at the current position and emits a
// NUL-terminated string there.
func (g *CodeGen) StringConst(label, s string) error {
	if err := g.Label(label); err != nil {
		return err
	}
	g.EmitString(s)
	return nil
}

// Fixup records an absolute-word reference to label at the current
// position and emits a two-byte placeholder. The label need not be
// defined yet; even if it is, patching is deferred to ResolveFixups so
// emission order never matters.
func (g *CodeGen) Fixup(label string) {
	g.reopen()
	g.fixups = append(g.fixups, fixup{
		offset: len(g.rom),
		label:  label,
		kind:   fixupAbsWord,
	})
	g.EmitWord(0)
}

// FixupRelative records a relative-byte reference to label at the
// current position and emits a one-byte placeholder. The displacement
// is computed from the address following the placeholder and must land
// in [-128, 127] at resolution time.
func (g *CodeGen) FixupRelative(label string) {
	g.reopen()
	g.fixups = append(g.fixups, fixup{
		offset: len(g.rom),
		label:  label,
		kind:   fixupRelByte,
		from:   g.Pos() + 1,
	})
	g.EmitByte(0)
}

func (g *CodeGen) reopen() {
	if g.state == ledgerResolved {
		g.state = ledgerOpen
	}
}

// ResolveFixups patches every pending fixup, in the order recorded,
// against the now-complete label table. Call it once after all
// emission; calling again with no intervening fixups is a no-op.
// Fixups recorded after a successful resolve reopen the ledger and
// only they are patched by the next call. A failed resolve is
// terminal for the session and the buffer contents must not be used.
func (g *CodeGen) ResolveFixups() error {
	switch g.state {
	case ledgerFailed:
		return g.resolveErr
	case ledgerResolved:
		return nil
	}

	for _, f := range g.fixups {
		addr, ok := g.labels[f.label]
		if !ok {
			g.resolveErr = &UnresolvedLabelError{Label: f.label, Offset: f.offset}
			g.state = ledgerFailed
			return g.resolveErr
		}
		switch f.kind {
		case fixupAbsWord:
			g.rom[f.offset] = byte(addr)
			g.rom[f.offset+1] = byte(addr >> 8)
		case fixupRelByte:
			disp := int(addr) - int(f.from)
			if disp < -128 || disp > 127 {
				g.resolveErr = &BranchOutOfRangeError{Offset: f.offset, Displacement: disp}
				g.state = ledgerFailed
				return g.resolveErr
			}
			g.rom[f.offset] = byte(int8(disp))
		}
	}

	g.fixups = g.fixups[:0]
	g.state = ledgerResolved
	return nil
}

// EmitStartup emits the standard boot sequence: a `_start` label,
// interrupts off, stack pointer loaded.
func (g *CodeGen) EmitStartup(stackTop int) error {
	if err := g.Label("_start"); err != nil {
		return err
	}
	g.Di()
	return g.LdSP(stackTop)
}
