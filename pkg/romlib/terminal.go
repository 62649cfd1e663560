package romlib

import "z80gen/pkg/codegen"

// VT100/ANSI escape sequence routines. Everything funnels through
// putchar, so IORoutines (or at least Putchar) must be emitted too.

const esc = 0x1B

// csi emits the inline ESC [ prefix shared by every sequence.
func csi(r *routine) {
	r.ldA(esc)
	r.g.Call("putchar")
	r.ldA('[')
	r.g.Call("putchar")
}

// ClearScreen emits the clear_screen routine (ESC[2J), falling through
// into cursor_home, so it must be emitted immediately before
// CursorHome.
//
// Labels created: clear_screen
// Requires: putchar
func ClearScreen(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("clear_screen")
	csi(r)
	r.ldA('2')
	g.Call("putchar")
	r.ldA('J')
	g.Call("putchar")
	// Fall through to cursor_home.
	return r.err
}

// CursorHome emits the cursor_home routine (ESC[H).
//
// Labels created: cursor_home
// Requires: putchar
func CursorHome(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("cursor_home")
	csi(r)
	r.ldA('H')
	g.Call("putchar")
	g.Ret()
	return r.err
}

// ClearScreenAndHome emits clear_screen followed by cursor_home.
func ClearScreenAndHome(g *codegen.CodeGen) error {
	if err := ClearScreen(g); err != nil {
		return err
	}
	return CursorHome(g)
}

// CursorPos emits the cursor_pos routine (ESC[row;colH). Row in B,
// column in C, both 1-based.
//
// Labels created: cursor_pos
// Requires: putchar, print_byte_dec
func CursorPos(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("cursor_pos")
	csi(r)
	g.LdAB()
	g.Call("print_byte_dec")
	r.ldA(';')
	g.Call("putchar")
	g.LdAC()
	g.Call("print_byte_dec")
	r.ldA('H')
	g.Call("putchar")
	g.Ret()
	return r.err
}

// ClearToEOL emits the clear_to_eol routine (ESC[K).
//
// Labels created: clear_to_eol
// Requires: putchar
func ClearToEOL(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("clear_to_eol")
	csi(r)
	r.ldA('K')
	g.Call("putchar")
	g.Ret()
	return r.err
}

// ClearToEOS emits the clear_to_eos routine (ESC[J), clearing from the
// cursor to the end of the screen.
//
// Labels created: clear_to_eos
// Requires: putchar
func ClearToEOS(g *codegen.CodeGen) error {
	r := begin(g)
	r.label("clear_to_eos")
	csi(r)
	r.ldA('J')
	g.Call("putchar")
	g.Ret()
	return r.err
}

// CursorHide emits the cursor_hide routine (ESC[?25l).
//
// Labels created: cursor_hide
// Requires: putchar
func CursorHide(g *codegen.CodeGen) error {
	return cursorVisibility(g, "cursor_hide", 'l')
}

// CursorShow emits the cursor_show routine (ESC[?25h).
//
// Labels created: cursor_show
// Requires: putchar
func CursorShow(g *codegen.CodeGen) error {
	return cursorVisibility(g, "cursor_show", 'h')
}

func cursorVisibility(g *codegen.CodeGen, name string, final byte) error {
	r := begin(g)
	r.label(name)
	csi(r)
	for _, ch := range []byte{'?', '2', '5', final} {
		r.ldA(int(ch))
		g.Call("putchar")
	}
	g.Ret()
	return r.err
}

// CursorUp emits cursor_up (ESC[A).
//
// Labels created: cursor_up
// Requires: putchar
func CursorUp(g *codegen.CodeGen) error {
	return cursorMove(g, "cursor_up", 'A')
}

// CursorDown emits cursor_down (ESC[B).
//
// Labels created: cursor_down
// Requires: putchar
func CursorDown(g *codegen.CodeGen) error {
	return cursorMove(g, "cursor_down", 'B')
}

// CursorRight emits cursor_right (ESC[C).
//
// Labels created: cursor_right
// Requires: putchar
func CursorRight(g *codegen.CodeGen) error {
	return cursorMove(g, "cursor_right", 'C')
}

// CursorLeft emits cursor_left (ESC[D).
//
// Labels created: cursor_left
// Requires: putchar
func CursorLeft(g *codegen.CodeGen) error {
	return cursorMove(g, "cursor_left", 'D')
}

func cursorMove(g *codegen.CodeGen, name string, final byte) error {
	r := begin(g)
	r.label(name)
	csi(r)
	r.ldA(int(final))
	g.Call("putchar")
	g.Ret()
	return r.err
}

// ResetAttrs emits reset_attrs (ESC[0m).
//
// Labels created: reset_attrs
// Requires: putchar
func ResetAttrs(g *codegen.CodeGen) error {
	return textAttr(g, "reset_attrs", '0')
}

// ReverseVideo emits reverse_video (ESC[7m).
//
// Labels created: reverse_video
// Requires: putchar
func ReverseVideo(g *codegen.CodeGen) error {
	return textAttr(g, "reverse_video", '7')
}

func textAttr(g *codegen.CodeGen, name string, code byte) error {
	r := begin(g)
	r.label(name)
	csi(r)
	r.ldA(int(code))
	g.Call("putchar")
	r.ldA('m')
	g.Call("putchar")
	g.Ret()
	return r.err
}

// TerminalRoutines emits clear_screen, cursor_home, cursor_pos,
// clear_to_eol, cursor_hide and cursor_show.
//
// Requires: putchar, print_byte_dec
func TerminalRoutines(g *codegen.CodeGen) error {
	if err := ClearScreenAndHome(g); err != nil {
		return err
	}
	if err := CursorPos(g); err != nil {
		return err
	}
	if err := ClearToEOL(g); err != nil {
		return err
	}
	if err := CursorHide(g); err != nil {
		return err
	}
	return CursorShow(g)
}
