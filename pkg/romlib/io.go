package romlib

import "z80gen/pkg/codegen"

// ACIAConfig describes an MC6850 serial port. The zero value is not
// useful; start from DefaultACIA.
type ACIAConfig struct {
	StatusPort byte
	DataPort   byte
	RxReadyBit byte
	TxReadyBit byte
}

// DefaultACIA is the standard RetroShield wiring: status on port 0x80,
// data on 0x81, RX ready in bit 0, TX ready in bit 1.
func DefaultACIA() ACIAConfig {
	return ACIAConfig{
		StatusPort: 0x80,
		DataPort:   0x81,
		RxReadyBit: 0x01,
		TxReadyBit: 0x02,
	}
}

// Getchar emits the blocking character-read routine. The character is
// returned in A.
//
// Labels created: getchar
func Getchar(g *codegen.CodeGen) error {
	return GetcharConfig(g, DefaultACIA())
}

// GetcharConfig emits getchar against a custom ACIA wiring.
func GetcharConfig(g *codegen.CodeGen, cfg ACIAConfig) error {
	r := begin(g)
	r.label("getchar")
	r.inA(int(cfg.StatusPort))
	r.andA(int(cfg.RxReadyBit))
	g.JrZ("getchar")
	r.inA(int(cfg.DataPort))
	g.Ret()
	return r.err
}

// Putchar emits the blocking character-write routine. The character to
// send goes in A; all registers are preserved.
//
// Labels created: putchar, putchar_wait
func Putchar(g *codegen.CodeGen) error {
	return PutcharConfig(g, DefaultACIA())
}

// PutcharConfig emits putchar against a custom ACIA wiring.
func PutcharConfig(g *codegen.CodeGen, cfg ACIAConfig) error {
	r := begin(g)
	r.label("putchar")
	g.PushAF()
	r.label("putchar_wait")
	r.inA(int(cfg.StatusPort))
	r.andA(int(cfg.TxReadyBit))
	g.JrZ("putchar_wait")
	g.PopAF()
	r.outA(int(cfg.DataPort))
	g.Ret()
	return r.err
}

// Newline emits the routine that prints CR LF.
//
// Labels created: newline
// Requires: putchar
func Newline(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("newline")
	r.ldA(0x0D)
	g.Call("putchar")
	r.ldA(0x0A)
	g.Call("putchar")
	g.Ret()
	return r.err
}

// PrintString emits the routine that prints the NUL-terminated string
// at HL.
//
// Labels created: print_string, print_string_loop
// Requires: putchar
func PrintString(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("print_string")
	r.label("print_string_loop")
	g.LdAHLInd()
	g.OrAA()
	g.RetZ()
	g.Call("putchar")
	g.IncHL()
	g.Jp("print_string_loop")
	return r.err
}

// IORoutines emits getchar, putchar, newline and print_string.
func IORoutines(g *codegen.CodeGen) error {
	if err := Getchar(g); err != nil {
		return err
	}
	if err := Putchar(g); err != nil {
		return err
	}
	if err := Newline(g); err != nil {
		return err
	}
	return PrintString(g)
}
