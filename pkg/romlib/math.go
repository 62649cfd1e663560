package romlib

import "z80gen/pkg/codegen"

// PrintByteDec emits the print_byte_dec routine: prints A as an
// unpadded decimal number. Digits are extracted least-significant
// first by repeated subtraction and reversed on the stack.
//
// Labels created: print_byte_dec
// Requires: putchar
func PrintByteDec(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("print_byte_dec")
	r.ldC(0) // digit count

	extract := g.UniqueLabel("pbd_ext")
	r.label(extract)
	r.ldB(0) // quotient
	div := g.UniqueLabel("pbd_div")
	r.label(div)
	r.cp(10)
	done := g.UniqueLabel("pbd_ddone")
	g.JpC(done)
	r.subA(10)
	g.IncB()
	g.Jp(div)

	r.label(done)
	// A = remainder digit, B = quotient.
	r.addA('0')
	g.PushAF()
	g.IncC()
	g.LdAB()
	g.OrAA()
	g.JpNZ(extract)

	// Pop and print the collected digits.
	printLoop := g.UniqueLabel("pbd_print")
	r.label(printLoop)
	g.PopAF()
	g.Call("putchar")
	g.DecC()
	g.JpNZ(printLoop)
	g.Ret()
	return r.err
}

// Div16 emits the div16 routine: HL / DE by repeated subtraction.
// Quotient comes back in HL, remainder in DE.
//
// Labels created: div16, div16_loop, div16_done
func Div16(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("div16")
	r.ldBC(0) // BC = quotient

	r.label("div16_loop")
	g.OrAA() // clear carry
	g.SbcHLDE()
	g.JpC("div16_done")
	g.IncBC()
	g.Jp("div16_loop")

	r.label("div16_done")
	g.AddHLDE() // restore remainder
	g.ExDEHL()  // DE = remainder
	g.LdHB()
	g.LdLC()
	g.Ret()
	return r.err
}

// Mul8 emits the mul8 routine: HL = A * B by repeated addition.
//
// Labels created: mul8, plus an internal loop label
func Mul8(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("mul8")
	r.ldHL(0)
	g.OrAA()
	g.RetZ() // A * 0 = 0

	g.LdCA()
	g.LdAB()
	g.OrAA()
	g.RetZ() // 0 * B = 0

	// HL = 0, C = multiplicand, B = multiplier.
	loop := g.UniqueLabel("mul8_loop")
	r.label(loop)
	g.LdAC()
	g.AddAL()
	g.LdLA()
	carry := g.UniqueLabel("mul8_nc")
	g.JrNC(carry)
	g.IncH()
	r.label(carry)
	g.Djnz(loop)
	g.Ret()
	return r.err
}

// NegateHL emits the negate_hl routine: HL = -HL, two's complement.
//
// Labels created: negate_hl
func NegateHL(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("negate_hl")
	g.LdAH()
	g.Cpl()
	g.LdHA()
	g.LdAL()
	g.Cpl()
	g.LdLA()
	g.IncHL()
	g.Ret()
	return r.err
}

// MathRoutines emits print_byte_dec, div16 and negate_hl.
func MathRoutines(g *codegen.CodeGen) error {
	if err := PrintByteDec(g); err != nil {
		return err
	}
	if err := Div16(g); err != nil {
		return err
	}
	return NegateHL(g)
}
