// romgen builds the demo ROMs and writes them as raw binary and
// optionally Intel HEX.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/docker/go-units"

	"z80gen/pkg/codegen"
	"z80gen/pkg/romfile"
	"z80gen/pkg/romlib"
)

func main() {
	demo := flag.String("demo", "hello", "demo ROM to build: hello, echo or counter")
	outPath := flag.String("out", "", "output binary path (default: <demo>.bin)")
	hexPath := flag.String("hex", "", "also write an Intel HEX image to this path")
	org := flag.Int("org", 0x0000, "ROM origin address")
	stack := flag.Int("stack", 0x3FFF, "initial stack top address")
	flag.Parse()

	if *org < 0 || *org > 0xFFFF {
		fmt.Fprintf(os.Stderr, "-org 0x%X out of the 16-bit address space\n", *org)
		os.Exit(2)
	}
	if *stack < 0 || *stack > 0xFFFF {
		fmt.Fprintf(os.Stderr, "-stack 0x%X out of the 16-bit address space\n", *stack)
		os.Exit(2)
	}

	config := codegen.DefaultConfig()
	config.Org = uint16(*org)
	config.StackTop = uint16(*stack)

	g, err := buildDemo(*demo, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building %q failed: %v\n", *demo, err)
		os.Exit(1)
	}
	if err := g.ResolveFixups(); err != nil {
		fmt.Fprintf(os.Stderr, "fixup resolution failed: %v\n", err)
		os.Exit(1)
	}

	output := *outPath
	if output == "" {
		output = *demo + ".bin"
	}
	if err := romfile.SaveBin(output, g.ROM()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %q: %v\n", output, err)
		os.Exit(1)
	}
	fmt.Printf("generated %s (%s) -> %s\n",
		units.HumanSize(float64(g.Size())), *demo, output)

	if *hexPath != "" {
		if err := romfile.SaveHex(*hexPath, config.Org, g.ROM()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %q: %v\n", *hexPath, err)
			os.Exit(1)
		}
		fmt.Printf("wrote Intel HEX -> %s\n", *hexPath)
	}
}

func buildDemo(name string, config codegen.RomConfig) (*codegen.CodeGen, error) {
	switch name {
	case "hello":
		return buildHello(config)
	case "echo":
		return buildEcho(config)
	case "counter":
		return buildCounter(config)
	}
	return nil, fmt.Errorf("unknown demo %q (want hello, echo or counter)", name)
}

// buildHello clears the screen, prints a greeting and parks the CPU.
func buildHello(config codegen.RomConfig) (*codegen.CodeGen, error) {
	g := codegen.WithConfig(config)
	if err := g.EmitStartup(int(config.StackTop)); err != nil {
		return nil, err
	}
	if err := g.Label("main"); err != nil {
		return nil, err
	}
	g.Call("clear_screen")
	g.LdHLLabel("hello_msg")
	g.Call("print_string")
	if err := g.Label("park"); err != nil {
		return nil, err
	}
	g.Jr("park")

	if err := g.StringConst("hello_msg", "Hello, RetroShield!\r\n"); err != nil {
		return nil, err
	}
	if err := romlib.Stdlib(g); err != nil {
		return nil, err
	}
	return g, nil
}

// buildEcho reads characters from the serial port and writes them
// straight back.
func buildEcho(config codegen.RomConfig) (*codegen.CodeGen, error) {
	g := codegen.WithConfig(config)
	if err := g.EmitStartup(int(config.StackTop)); err != nil {
		return nil, err
	}
	if err := g.Label("main"); err != nil {
		return nil, err
	}
	g.Call("getchar")
	g.Call("putchar")
	g.Jp("main")
	if err := romlib.IORoutines(g); err != nil {
		return nil, err
	}
	return g, nil
}

// buildCounter prints 0..255 in decimal, one per line, forever.
func buildCounter(config codegen.RomConfig) (*codegen.CodeGen, error) {
	g := codegen.WithConfig(config)
	if err := g.EmitStartup(int(config.StackTop)); err != nil {
		return nil, err
	}
	if err := g.Label("main"); err != nil {
		return nil, err
	}
	g.XorA()
	if err := g.Label("count_loop"); err != nil {
		return nil, err
	}
	g.PushAF()
	g.Call("print_byte_dec")
	g.Call("newline")
	g.PopAF()
	g.IncA()
	g.JrNZ("count_loop")
	g.Jp("main")
	if err := romlib.IORoutines(g); err != nil {
		return nil, err
	}
	if err := romlib.MathRoutines(g); err != nil {
		return nil, err
	}
	return g, nil
}
