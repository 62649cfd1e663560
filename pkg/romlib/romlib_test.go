package romlib

import (
	"bytes"
	"testing"

	"z80gen/pkg/codegen"
)

func TestGetcharEncoding(t *testing.T) {
	g := codegen.New()
	if err := Getchar(g); err != nil {
		t.Fatalf("Getchar: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	want := []byte{
		0xDB, 0x80, // IN A, (0x80)
		0xE6, 0x01, // AND 0x01
		0x28, 0xFA, // JR Z, getchar (-6)
		0xDB, 0x81, // IN A, (0x81)
		0xC9, // RET
	}
	if !bytes.Equal(g.ROM(), want) {
		t.Errorf("ROM() = % X; want % X", g.ROM(), want)
	}
	if !g.HasLabel("getchar") {
		t.Error("getchar label not defined")
	}
}

func TestPutcharEncoding(t *testing.T) {
	g := codegen.New()
	if err := Putchar(g); err != nil {
		t.Fatalf("Putchar: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	want := []byte{
		0xF5,       // PUSH AF
		0xDB, 0x80, // IN A, (0x80)
		0xE6, 0x02, // AND 0x02
		0x28, 0xFA, // JR Z, putchar_wait (-6)
		0xF1,       // POP AF
		0xD3, 0x81, // OUT (0x81), A
		0xC9, // RET
	}
	if !bytes.Equal(g.ROM(), want) {
		t.Errorf("ROM() = % X; want % X", g.ROM(), want)
	}
	if !g.HasLabel("putchar") || !g.HasLabel("putchar_wait") {
		t.Error("putchar labels not defined")
	}
}

func TestCustomACIAPorts(t *testing.T) {
	g := codegen.New()
	cfg := ACIAConfig{StatusPort: 0x10, DataPort: 0x11, RxReadyBit: 0x80, TxReadyBit: 0x40}
	if err := GetcharConfig(g, cfg); err != nil {
		t.Fatalf("GetcharConfig: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	rom := g.ROM()
	if rom[1] != 0x10 {
		t.Errorf("status port = 0x%02X; want 0x10", rom[1])
	}
	if rom[3] != 0x80 {
		t.Errorf("rx mask = 0x%02X; want 0x80", rom[3])
	}
	if rom[7] != 0x11 {
		t.Errorf("data port = 0x%02X; want 0x11", rom[7])
	}
}

func TestPrintString(t *testing.T) {
	g := codegen.New()
	if err := g.Label("putchar"); err != nil {
		t.Fatalf("Label: %v", err)
	}
	g.Ret()
	if err := PrintString(g); err != nil {
		t.Fatalf("PrintString: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	if !g.HasLabel("print_string") || !g.HasLabel("print_string_loop") {
		t.Error("print_string labels not defined")
	}
	// Routine body: LD A,(HL); OR A; RET Z; CALL putchar; INC HL; JP loop
	want := []byte{
		0xC9,             // stub putchar: RET
		0x7E,             // LD A, (HL)
		0xB7,             // OR A
		0xC8,             // RET Z
		0xCD, 0x00, 0x00, // CALL putchar (0x0000)
		0x23,             // INC HL
		0xC3, 0x01, 0x00, // JP print_string_loop (0x0001)
	}
	if !bytes.Equal(g.ROM(), want) {
		t.Errorf("ROM() = % X; want % X", g.ROM(), want)
	}
}

func TestNewline(t *testing.T) {
	g := codegen.New()
	if err := g.Label("putchar"); err != nil {
		t.Fatalf("Label: %v", err)
	}
	g.Ret()
	if err := Newline(g); err != nil {
		t.Fatalf("Newline: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	want := []byte{
		0xC9,       // stub putchar
		0x3E, 0x0D, // LD A, CR
		0xCD, 0x00, 0x00, // CALL putchar
		0x3E, 0x0A, // LD A, LF
		0xCD, 0x00, 0x00, // CALL putchar
		0xC9, // RET
	}
	if !bytes.Equal(g.ROM(), want) {
		t.Errorf("ROM() = % X; want % X", g.ROM(), want)
	}
}

func TestTerminalRoutines(t *testing.T) {
	g := codegen.New()
	if err := g.Label("putchar"); err != nil {
		t.Fatalf("Label: %v", err)
	}
	g.Ret()
	if err := g.Label("print_byte_dec"); err != nil {
		t.Fatalf("Label: %v", err)
	}
	g.Ret()
	if err := TerminalRoutines(g); err != nil {
		t.Fatalf("TerminalRoutines: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	for _, label := range []string{
		"clear_screen", "cursor_home", "cursor_pos",
		"clear_to_eol", "cursor_hide", "cursor_show",
	} {
		if !g.HasLabel(label) {
			t.Errorf("label %q not defined", label)
		}
	}
}

func TestClearScreenFallsThroughToHome(t *testing.T) {
	g := codegen.New()
	if err := g.Label("putchar"); err != nil {
		t.Fatalf("Label: %v", err)
	}
	g.Ret()
	if err := ClearScreenAndHome(g); err != nil {
		t.Fatalf("ClearScreenAndHome: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	cs, _ := g.LabelAddr("clear_screen")
	ch, _ := g.LabelAddr("cursor_home")
	if ch <= cs {
		t.Fatalf("cursor_home (0x%04X) should follow clear_screen (0x%04X)", ch, cs)
	}
	// clear_screen ends without RET so execution falls into cursor_home:
	// the byte before cursor_home must be the final CALL operand, not 0xC9.
	if g.ROM()[ch-1] == 0xC9 {
		t.Error("clear_screen ends in RET; it should fall through to cursor_home")
	}
}

func TestPrintByteDec(t *testing.T) {
	g := codegen.New()
	if err := g.Label("putchar"); err != nil {
		t.Fatalf("Label: %v", err)
	}
	g.Ret()
	if err := PrintByteDec(g); err != nil {
		t.Fatalf("PrintByteDec: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	if !g.HasLabel("print_byte_dec") {
		t.Error("print_byte_dec label not defined")
	}
}

func TestDiv16Encoding(t *testing.T) {
	g := codegen.New()
	if err := Div16(g); err != nil {
		t.Fatalf("Div16: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	for _, label := range []string{"div16", "div16_loop", "div16_done"} {
		if !g.HasLabel(label) {
			t.Errorf("label %q not defined", label)
		}
	}
	want := []byte{
		0x01, 0x00, 0x00, // LD BC, 0
		0xB7,       // OR A
		0xED, 0x52, // SBC HL, DE
		0xDA, 0x0D, 0x00, // JP C, div16_done
		0x03,             // INC BC
		0xC3, 0x03, 0x00, // JP div16_loop
		0x19, // ADD HL, DE
		0xEB, // EX DE, HL
		0x60, // LD H, B
		0x69, // LD L, C
		0xC9, // RET
	}
	if !bytes.Equal(g.ROM(), want) {
		t.Errorf("ROM() = % X; want % X", g.ROM(), want)
	}
}

func TestMul8ResolvesForwardBranch(t *testing.T) {
	g := codegen.New()
	if err := Mul8(g); err != nil {
		t.Fatalf("Mul8: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	if !g.HasLabel("mul8") {
		t.Error("mul8 label not defined")
	}
	// The carry-skip branch jumps over the single INC H byte.
	rom := g.ROM()
	for i := 0; i+1 < len(rom); i++ {
		if rom[i] == 0x30 { // JR NC
			if rom[i+1] != 0x01 {
				t.Errorf("JR NC displacement = 0x%02X; want 0x01", rom[i+1])
			}
			return
		}
	}
	t.Error("no JR NC found in mul8 body")
}

func TestNegateHLEncoding(t *testing.T) {
	g := codegen.New()
	if err := NegateHL(g); err != nil {
		t.Fatalf("NegateHL: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	want := []byte{
		0x7C, // LD A, H
		0x2F, // CPL
		0x67, // LD H, A
		0x7D, // LD A, L
		0x2F, // CPL
		0x6F, // LD L, A
		0x23, // INC HL
		0xC9, // RET
	}
	if !bytes.Equal(g.ROM(), want) {
		t.Errorf("ROM() = % X; want % X", g.ROM(), want)
	}
}

func TestStdlibResolves(t *testing.T) {
	g := codegen.New()
	if err := g.EmitStartup(0x3FFF); err != nil {
		t.Fatalf("EmitStartup: %v", err)
	}
	if err := g.Label("main"); err != nil {
		t.Fatalf("Label: %v", err)
	}
	g.Call("clear_screen")
	g.LdHLLabel("msg")
	g.Call("print_string")
	g.Jp("main")
	if err := g.StringConst("msg", "Hello!\r\n"); err != nil {
		t.Fatalf("StringConst: %v", err)
	}
	if err := Stdlib(g); err != nil {
		t.Fatalf("Stdlib: %v", err)
	}
	if err := g.ResolveFixups(); err != nil {
		t.Fatalf("ResolveFixups: %v", err)
	}
	if g.Size() == 0 {
		t.Fatal("empty ROM")
	}
	// The msg fixup decodes to the string constant.
	addr, ok := g.LabelAddr("msg")
	if !ok {
		t.Fatal("msg label missing")
	}
	rom := g.ROM()
	// LD HL operand sits right after CALL clear_screen (3 bytes) and
	// the LD HL opcode, from main.
	main, _ := g.LabelAddr("main")
	off := int(main) + 4
	if got := uint16(rom[off]) | uint16(rom[off+1])<<8; got != addr {
		t.Errorf("LD HL operand = 0x%04X; want 0x%04X", got, addr)
	}
	if rom[addr] != 'H' {
		t.Errorf("rom[msg] = 0x%02X; want 'H'", rom[addr])
	}
}

func TestDuplicateRoutineEmission(t *testing.T) {
	g := codegen.New()
	if err := Getchar(g); err != nil {
		t.Fatalf("first Getchar: %v", err)
	}
	if err := Getchar(g); err == nil {
		t.Error("second Getchar emission should fail with a duplicate label error")
	}
}
