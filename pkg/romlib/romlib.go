// Package romlib emits the standard ROM routine library through the
// codegen emission API: MC6850 serial I/O, VT100 terminal control and
// small math helpers. Each routine defines well-known labels that
// caller code targets with Call; dependencies between routines are
// noted per function.
package romlib

import "z80gen/pkg/codegen"

// Stdlib emits the whole routine library: I/O, terminal and math.
// Emit it after the main program so it does not sit in the execution
// path.
func Stdlib(g *codegen.CodeGen) error {
	if err := IORoutines(g); err != nil {
		return err
	}
	if err := TerminalRoutines(g); err != nil {
		return err
	}
	return MathRoutines(g)
}

// routine latches the first error from the fallible emission calls so
// routine bodies read one instruction per line, like the assembly they
// produce. Infallible instructions go straight to r.g.
type routine struct {
	g   *codegen.CodeGen
	err error
}

func begin(g *codegen.CodeGen) *routine {
	return &routine{g: g}
}

func (r *routine) check(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *routine) label(name string) { r.check(r.g.Label(name)) }
func (r *routine) ldA(n int)         { r.check(r.g.LdA(n)) }
func (r *routine) ldB(n int)         { r.check(r.g.LdB(n)) }
func (r *routine) ldC(n int)         { r.check(r.g.LdC(n)) }
func (r *routine) ldBC(nn int)       { r.check(r.g.LdBC(nn)) }
func (r *routine) ldHL(nn int)       { r.check(r.g.LdHL(nn)) }
func (r *routine) andA(n int)        { r.check(r.g.AndA(n)) }
func (r *routine) inA(port int)      { r.check(r.g.InA(port)) }
func (r *routine) outA(port int)     { r.check(r.g.OutA(port)) }
func (r *routine) addA(n int)        { r.check(r.g.AddA(n)) }
func (r *routine) subA(n int)        { r.check(r.g.SubA(n)) }
func (r *routine) cp(n int)          { r.check(r.g.Cp(n)) }
