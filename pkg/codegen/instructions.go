package codegen

// One method per Z80 instruction form. Opcodes follow the standard
// Zilog encoding; operand bytes always land after the opcode, words
// little-endian. Forms whose operand names a label defer the operand
// bytes through the fixup ledger.
//
// Methods that accept an immediate, port or bit number take an int and
// range-check it, so a bad value fails here rather than silently
// truncating into the image.

func (g *CodeGen) checkByte(op string, n int) error {
	if n < 0 || n > 0xFF {
		return &OperandRangeError{Op: op, Value: n, Min: 0, Max: 0xFF}
	}
	return nil
}

func (g *CodeGen) checkWord(op string, n int) error {
	if n < 0 || n > 0xFFFF {
		return &OperandRangeError{Op: op, Value: n, Min: 0, Max: 0xFFFF}
	}
	return nil
}

func (g *CodeGen) checkBit(op string, n int) error {
	if n < 0 || n > 7 {
		return &OperandRangeError{Op: op, Value: n, Min: 0, Max: 7}
	}
	return nil
}

func (g *CodeGen) emitImm8(op string, opcode byte, n int) error {
	if err := g.checkByte(op, n); err != nil {
		return err
	}
	g.Emit(opcode, byte(n))
	return nil
}

func (g *CodeGen) emitImm16(op string, opcode byte, nn int) error {
	if err := g.checkWord(op, nn); err != nil {
		return err
	}
	g.EmitByte(opcode)
	g.EmitWord(uint16(nn))
	return nil
}

// ---------- 8-bit loads ----------

// LdA emits LD A, n.
func (g *CodeGen) LdA(n int) error { return g.emitImm8("LD A,n", 0x3E, n) }

// LdB emits LD B, n.
func (g *CodeGen) LdB(n int) error { return g.emitImm8("LD B,n", 0x06, n) }

// LdC emits LD C, n.
func (g *CodeGen) LdC(n int) error { return g.emitImm8("LD C,n", 0x0E, n) }

// LdD emits LD D, n.
func (g *CodeGen) LdD(n int) error { return g.emitImm8("LD D,n", 0x16, n) }

// LdE emits LD E, n.
func (g *CodeGen) LdE(n int) error { return g.emitImm8("LD E,n", 0x1E, n) }

// LdH emits LD H, n.
func (g *CodeGen) LdH(n int) error { return g.emitImm8("LD H,n", 0x26, n) }

// LdL emits LD L, n.
func (g *CodeGen) LdL(n int) error { return g.emitImm8("LD L,n", 0x2E, n) }

// LdAHLInd emits LD A, (HL).
func (g *CodeGen) LdAHLInd() { g.EmitByte(0x7E) }

// LdHLIndA emits LD (HL), A.
func (g *CodeGen) LdHLIndA() { g.EmitByte(0x77) }

// LdAB emits LD A, B.
func (g *CodeGen) LdAB() { g.EmitByte(0x78) }

// LdAC emits LD A, C.
func (g *CodeGen) LdAC() { g.EmitByte(0x79) }

// LdAD emits LD A, D.
func (g *CodeGen) LdAD() { g.EmitByte(0x7A) }

// LdAE emits LD A, E.
func (g *CodeGen) LdAE() { g.EmitByte(0x7B) }

// LdAH emits LD A, H.
func (g *CodeGen) LdAH() { g.EmitByte(0x7C) }

// LdAL emits LD A, L.
func (g *CodeGen) LdAL() { g.EmitByte(0x7D) }

// LdBA emits LD B, A.
func (g *CodeGen) LdBA() { g.EmitByte(0x47) }

// LdCA emits LD C, A.
func (g *CodeGen) LdCA() { g.EmitByte(0x4F) }

// LdDA emits LD D, A.
func (g *CodeGen) LdDA() { g.EmitByte(0x57) }

// LdEA emits LD E, A.
func (g *CodeGen) LdEA() { g.EmitByte(0x5F) }

// LdHA emits LD H, A.
func (g *CodeGen) LdHA() { g.EmitByte(0x67) }

// LdLA emits LD L, A.
func (g *CodeGen) LdLA() { g.EmitByte(0x6F) }

// LdHB emits LD H, B.
func (g *CodeGen) LdHB() { g.EmitByte(0x60) }

// LdLC emits LD L, C.
func (g *CodeGen) LdLC() { g.EmitByte(0x69) }

// LdAAddr emits LD A, (nn).
func (g *CodeGen) LdAAddr(addr int) error { return g.emitImm16("LD A,(nn)", 0x3A, addr) }

// LdAddrA emits LD (nn), A.
func (g *CodeGen) LdAddrA(addr int) error { return g.emitImm16("LD (nn),A", 0x32, addr) }

// ---------- 16-bit loads ----------

// LdBC emits LD BC, nn.
func (g *CodeGen) LdBC(nn int) error { return g.emitImm16("LD BC,nn", 0x01, nn) }

// LdDE emits LD DE, nn.
func (g *CodeGen) LdDE(nn int) error { return g.emitImm16("LD DE,nn", 0x11, nn) }

// LdHL emits LD HL, nn.
func (g *CodeGen) LdHL(nn int) error { return g.emitImm16("LD HL,nn", 0x21, nn) }

// LdSP emits LD SP, nn.
func (g *CodeGen) LdSP(nn int) error { return g.emitImm16("LD SP,nn", 0x31, nn) }

// LdHLAddr emits LD HL, (nn).
func (g *CodeGen) LdHLAddr(addr int) error { return g.emitImm16("LD HL,(nn)", 0x2A, addr) }

// LdAddrHL emits LD (nn), HL.
func (g *CodeGen) LdAddrHL(addr int) error { return g.emitImm16("LD (nn),HL", 0x22, addr) }

// LdDEAddr emits LD DE, (nn).
func (g *CodeGen) LdDEAddr(addr int) error {
	if err := g.checkWord("LD DE,(nn)", addr); err != nil {
		return err
	}
	g.Emit(0xED, 0x5B)
	g.EmitWord(uint16(addr))
	return nil
}

// LdAddrDE emits LD (nn), DE.
func (g *CodeGen) LdAddrDE(addr int) error {
	if err := g.checkWord("LD (nn),DE", addr); err != nil {
		return err
	}
	g.Emit(0xED, 0x53)
	g.EmitWord(uint16(addr))
	return nil
}

// LdSPHL emits LD SP, HL.
func (g *CodeGen) LdSPHL() { g.EmitByte(0xF9) }

// LdHLLabel emits LD HL, nn with the address of label, via fixup.
// Handy for pointing HL at string constants.
func (g *CodeGen) LdHLLabel(label string) {
	g.EmitByte(0x21)
	g.Fixup(label)
}

// LdDELabel emits LD DE, nn with the address of label, via fixup.
func (g *CodeGen) LdDELabel(label string) {
	g.EmitByte(0x11)
	g.Fixup(label)
}

// LdBCLabel emits LD BC, nn with the address of label, via fixup.
func (g *CodeGen) LdBCLabel(label string) {
	g.EmitByte(0x01)
	g.Fixup(label)
}

// ---------- stack ----------

// PushAF emits PUSH AF.
func (g *CodeGen) PushAF() { g.EmitByte(0xF5) }

// PushBC emits PUSH BC.
func (g *CodeGen) PushBC() { g.EmitByte(0xC5) }

// PushDE emits PUSH DE.
func (g *CodeGen) PushDE() { g.EmitByte(0xD5) }

// PushHL emits PUSH HL.
func (g *CodeGen) PushHL() { g.EmitByte(0xE5) }

// PopAF emits POP AF.
func (g *CodeGen) PopAF() { g.EmitByte(0xF1) }

// PopBC emits POP BC.
func (g *CodeGen) PopBC() { g.EmitByte(0xC1) }

// PopDE emits POP DE.
func (g *CodeGen) PopDE() { g.EmitByte(0xD1) }

// PopHL emits POP HL.
func (g *CodeGen) PopHL() { g.EmitByte(0xE1) }

// ---------- exchanges ----------

// ExDEHL emits EX DE, HL.
func (g *CodeGen) ExDEHL() { g.EmitByte(0xEB) }

// ExAF emits EX AF, AF'.
func (g *CodeGen) ExAF() { g.EmitByte(0x08) }

// Exx emits EXX.
func (g *CodeGen) Exx() { g.EmitByte(0xD9) }

// ---------- 8-bit arithmetic ----------

// AddA emits ADD A, n.
func (g *CodeGen) AddA(n int) error { return g.emitImm8("ADD A,n", 0xC6, n) }

// AddAB emits ADD A, B.
func (g *CodeGen) AddAB() { g.EmitByte(0x80) }

// AddAL emits ADD A, L.
func (g *CodeGen) AddAL() { g.EmitByte(0x85) }

// AddAHLInd emits ADD A, (HL).
func (g *CodeGen) AddAHLInd() { g.EmitByte(0x86) }

// SubA emits SUB n.
func (g *CodeGen) SubA(n int) error { return g.emitImm8("SUB n", 0xD6, n) }

// SubB emits SUB B.
func (g *CodeGen) SubB() { g.EmitByte(0x90) }

// IncA emits INC A.
func (g *CodeGen) IncA() { g.EmitByte(0x3C) }

// IncB emits INC B.
func (g *CodeGen) IncB() { g.EmitByte(0x04) }

// IncC emits INC C.
func (g *CodeGen) IncC() { g.EmitByte(0x0C) }

// IncH emits INC H.
func (g *CodeGen) IncH() { g.EmitByte(0x24) }

// DecA emits DEC A.
func (g *CodeGen) DecA() { g.EmitByte(0x3D) }

// DecB emits DEC B.
func (g *CodeGen) DecB() { g.EmitByte(0x05) }

// DecC emits DEC C.
func (g *CodeGen) DecC() { g.EmitByte(0x0D) }

// ---------- 16-bit arithmetic ----------

// IncHL emits INC HL.
func (g *CodeGen) IncHL() { g.EmitByte(0x23) }

// IncDE emits INC DE.
func (g *CodeGen) IncDE() { g.EmitByte(0x13) }

// IncBC emits INC BC.
func (g *CodeGen) IncBC() { g.EmitByte(0x03) }

// DecHL emits DEC HL.
func (g *CodeGen) DecHL() { g.EmitByte(0x2B) }

// DecDE emits DEC DE.
func (g *CodeGen) DecDE() { g.EmitByte(0x1B) }

// DecBC emits DEC BC.
func (g *CodeGen) DecBC() { g.EmitByte(0x0B) }

// AddHLBC emits ADD HL, BC.
func (g *CodeGen) AddHLBC() { g.EmitByte(0x09) }

// AddHLDE emits ADD HL, DE.
func (g *CodeGen) AddHLDE() { g.EmitByte(0x19) }

// AddHLHL emits ADD HL, HL.
func (g *CodeGen) AddHLHL() { g.EmitByte(0x29) }

// SbcHLDE emits SBC HL, DE.
func (g *CodeGen) SbcHLDE() { g.Emit(0xED, 0x52) }

// SbcHLBC emits SBC HL, BC.
func (g *CodeGen) SbcHLBC() { g.Emit(0xED, 0x42) }

// ---------- logic ----------

// AndA emits AND n.
func (g *CodeGen) AndA(n int) error { return g.emitImm8("AND n", 0xE6, n) }

// OrA emits OR n.
func (g *CodeGen) OrA(n int) error { return g.emitImm8("OR n", 0xF6, n) }

// OrAA emits OR A. Common idiom for testing A against zero.
func (g *CodeGen) OrAA() { g.EmitByte(0xB7) }

// OrB emits OR B.
func (g *CodeGen) OrB() { g.EmitByte(0xB0) }

// OrL emits OR L.
func (g *CodeGen) OrL() { g.EmitByte(0xB5) }

// XorA emits XOR A, the shortest way to zero the accumulator.
func (g *CodeGen) XorA() { g.EmitByte(0xAF) }

// XorN emits XOR n.
func (g *CodeGen) XorN(n int) error { return g.emitImm8("XOR n", 0xEE, n) }

// Cp emits CP n.
func (g *CodeGen) Cp(n int) error { return g.emitImm8("CP n", 0xFE, n) }

// CpB emits CP B.
func (g *CodeGen) CpB() { g.EmitByte(0xB8) }

// CpHLInd emits CP (HL).
func (g *CodeGen) CpHLInd() { g.EmitByte(0xBE) }

// Cpl emits CPL.
func (g *CodeGen) Cpl() { g.EmitByte(0x2F) }

// ---------- jumps ----------

// Jp emits JP nn targeting label, via fixup.
func (g *CodeGen) Jp(label string) {
	g.EmitByte(0xC3)
	g.Fixup(label)
}

// JpAddr emits JP nn with a literal address.
func (g *CodeGen) JpAddr(addr int) error { return g.emitImm16("JP nn", 0xC3, addr) }

// JpZ emits JP Z, nn targeting label.
func (g *CodeGen) JpZ(label string) {
	g.EmitByte(0xCA)
	g.Fixup(label)
}

// JpNZ emits JP NZ, nn targeting label.
func (g *CodeGen) JpNZ(label string) {
	g.EmitByte(0xC2)
	g.Fixup(label)
}

// JpC emits JP C, nn targeting label.
func (g *CodeGen) JpC(label string) {
	g.EmitByte(0xDA)
	g.Fixup(label)
}

// JpNC emits JP NC, nn targeting label.
func (g *CodeGen) JpNC(label string) {
	g.EmitByte(0xD2)
	g.Fixup(label)
}

// JpP emits JP P, nn targeting label (sign flag clear).
func (g *CodeGen) JpP(label string) {
	g.EmitByte(0xF2)
	g.Fixup(label)
}

// JpM emits JP M, nn targeting label (sign flag set).
func (g *CodeGen) JpM(label string) {
	g.EmitByte(0xFA)
	g.Fixup(label)
}

// JpHL emits JP (HL).
func (g *CodeGen) JpHL() { g.EmitByte(0xE9) }

// Jr emits JR e targeting label. The displacement is patched at
// resolution time, so forward targets are fine; it must land within
// [-128, 127] of the following instruction.
func (g *CodeGen) Jr(label string) {
	g.EmitByte(0x18)
	g.FixupRelative(label)
}

// JrZ emits JR Z, e targeting label.
func (g *CodeGen) JrZ(label string) {
	g.EmitByte(0x28)
	g.FixupRelative(label)
}

// JrNZ emits JR NZ, e targeting label.
func (g *CodeGen) JrNZ(label string) {
	g.EmitByte(0x20)
	g.FixupRelative(label)
}

// JrC emits JR C, e targeting label.
func (g *CodeGen) JrC(label string) {
	g.EmitByte(0x38)
	g.FixupRelative(label)
}

// JrNC emits JR NC, e targeting label.
func (g *CodeGen) JrNC(label string) {
	g.EmitByte(0x30)
	g.FixupRelative(label)
}

// Djnz emits DJNZ e targeting label.
func (g *CodeGen) Djnz(label string) {
	g.EmitByte(0x10)
	g.FixupRelative(label)
}

// ---------- calls and returns ----------

// Call emits CALL nn targeting label, via fixup.
func (g *CodeGen) Call(label string) {
	g.EmitByte(0xCD)
	g.Fixup(label)
}

// CallAddr emits CALL nn with a literal address.
func (g *CodeGen) CallAddr(addr int) error { return g.emitImm16("CALL nn", 0xCD, addr) }

// CallZ emits CALL Z, nn targeting label.
func (g *CodeGen) CallZ(label string) {
	g.EmitByte(0xCC)
	g.Fixup(label)
}

// CallNZ emits CALL NZ, nn targeting label.
func (g *CodeGen) CallNZ(label string) {
	g.EmitByte(0xC4)
	g.Fixup(label)
}

// Ret emits RET.
func (g *CodeGen) Ret() { g.EmitByte(0xC9) }

// RetZ emits RET Z.
func (g *CodeGen) RetZ() { g.EmitByte(0xC8) }

// RetNZ emits RET NZ.
func (g *CodeGen) RetNZ() { g.EmitByte(0xC0) }

// RetC emits RET C.
func (g *CodeGen) RetC() { g.EmitByte(0xD8) }

// RetNC emits RET NC.
func (g *CodeGen) RetNC() { g.EmitByte(0xD0) }

// ---------- I/O ----------

// InA emits IN A, (n).
func (g *CodeGen) InA(port int) error { return g.emitImm8("IN A,(n)", 0xDB, port) }

// OutA emits OUT (n), A.
func (g *CodeGen) OutA(port int) error { return g.emitImm8("OUT (n),A", 0xD3, port) }

// ---------- misc ----------

// Nop emits NOP.
func (g *CodeGen) Nop() { g.EmitByte(0x00) }

// Halt emits HALT.
func (g *CodeGen) Halt() { g.EmitByte(0x76) }

// Di emits DI.
func (g *CodeGen) Di() { g.EmitByte(0xF3) }

// Ei emits EI.
func (g *CodeGen) Ei() { g.EmitByte(0xFB) }

// Scf emits SCF.
func (g *CodeGen) Scf() { g.EmitByte(0x37) }

// Ccf emits CCF.
func (g *CodeGen) Ccf() { g.EmitByte(0x3F) }

// ---------- bit operations ----------

// BitA emits BIT b, A.
func (g *CodeGen) BitA(bit int) error {
	if err := g.checkBit("BIT b,A", bit); err != nil {
		return err
	}
	g.Emit(0xCB, 0x47|byte(bit)<<3)
	return nil
}

// SetA emits SET b, A.
func (g *CodeGen) SetA(bit int) error {
	if err := g.checkBit("SET b,A", bit); err != nil {
		return err
	}
	g.Emit(0xCB, 0xC7|byte(bit)<<3)
	return nil
}

// ResA emits RES b, A.
func (g *CodeGen) ResA(bit int) error {
	if err := g.checkBit("RES b,A", bit); err != nil {
		return err
	}
	g.Emit(0xCB, 0x87|byte(bit)<<3)
	return nil
}

// Rla emits RLA.
func (g *CodeGen) Rla() { g.EmitByte(0x17) }

// Rra emits RRA.
func (g *CodeGen) Rra() { g.EmitByte(0x1F) }

// Rlca emits RLCA.
func (g *CodeGen) Rlca() { g.EmitByte(0x07) }

// Rrca emits RRCA.
func (g *CodeGen) Rrca() { g.EmitByte(0x0F) }

// SlaA emits SLA A.
func (g *CodeGen) SlaA() { g.Emit(0xCB, 0x27) }

// SraA emits SRA A.
func (g *CodeGen) SraA() { g.Emit(0xCB, 0x2F) }

// SrlA emits SRL A.
func (g *CodeGen) SrlA() { g.Emit(0xCB, 0x3F) }
