// rommon is an interactive monitor for ROM image files. It loads raw
// binary or Intel HEX images and lets you inspect and re-save them.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/docker/go-units"

	"z80gen/pkg/romfile"
)

const prompt = "\033[32mrommon>\033[0m "

type session struct {
	path string
	org  uint16
	data []byte
}

func main() {
	s := &session{}
	if len(os.Args) > 1 {
		if err := s.load(os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
			os.Exit(1)
		}
		s.info(os.Stdout)
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       os.TempDir() + "/.rommon-history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer l.Close()
	l.CaptureExitSignal()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "readline: %v\n", err)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := s.dispatch(os.Stdout, line); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}

func (s *session) dispatch(w io.Writer, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		usage(w)
		return nil
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("usage: load <file>")
		}
		if err := s.load(args[0]); err != nil {
			return err
		}
		s.info(w)
		return nil
	case "info":
		if err := s.needImage(); err != nil {
			return err
		}
		s.info(w)
		return nil
	case "org":
		if len(args) == 0 {
			fmt.Fprintf(w, "org 0x%04X\n", s.org)
			return nil
		}
		v, err := parseNum(args[0])
		if err != nil || v > 0xFFFF {
			return fmt.Errorf("bad origin %q", args[0])
		}
		s.org = uint16(v)
		return nil
	case "dump":
		return s.dump(w, args)
	case "save":
		if len(args) != 1 {
			return fmt.Errorf("usage: save <file>")
		}
		if err := s.needImage(); err != nil {
			return err
		}
		return romfile.SaveBin(args[0], s.data)
	case "savehex":
		if len(args) != 1 {
			return fmt.Errorf("usage: savehex <file>")
		}
		if err := s.needImage(); err != nil {
			return err
		}
		return romfile.SaveHex(args[0], s.org, s.data)
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func (s *session) load(path string) error {
	org, data, err := romfile.Load(path)
	if err != nil {
		return err
	}
	s.path = path
	s.org = org
	s.data = data
	return nil
}

func (s *session) needImage() error {
	if s.data == nil {
		return fmt.Errorf("no image loaded (use load <file>)")
	}
	return nil
}

func (s *session) info(w io.Writer) {
	var sum byte
	for _, b := range s.data {
		sum += b
	}
	fmt.Fprintf(w, "%s: %d bytes (%s), org 0x%04X, checksum 0x%02X\n",
		s.path, len(s.data), units.HumanSize(float64(len(s.data))), s.org, sum)
}

// dump prints a hex/ASCII listing. Arguments are an optional start
// address (default org) and byte count (default 128).
func (s *session) dump(w io.Writer, args []string) error {
	if err := s.needImage(); err != nil {
		return err
	}
	start := int(s.org)
	count := 128
	if len(args) > 0 {
		v, err := parseNum(args[0])
		if err != nil {
			return fmt.Errorf("bad address %q", args[0])
		}
		start = v
	}
	if len(args) > 1 {
		v, err := parseNum(args[1])
		if err != nil {
			return fmt.Errorf("bad count %q", args[1])
		}
		count = v
	}
	if start < int(s.org) || start >= int(s.org)+len(s.data) {
		return fmt.Errorf("address 0x%04X outside image", start)
	}
	if avail := int(s.org) + len(s.data) - start; count > avail {
		count = avail
	}

	for base := start; base < start+count; base += 16 {
		n := start + count - base
		if n > 16 {
			n = 16
		}
		row := s.data[base-int(s.org) : base-int(s.org)+n]
		fmt.Fprintf(w, "%04X  ", base)
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(w, "%02X ", row[i])
			} else {
				fmt.Fprint(w, "   ")
			}
		}
		fmt.Fprint(w, " |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
	return nil
}

// parseNum accepts decimal, 0x-prefixed hex and bare hex with a $
// prefix, the way 8-bit tooling usually writes addresses.
func parseNum(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		return int(v), err
	}
	v, err := strconv.ParseUint(s, 0, 32)
	return int(v), err
}

func usage(w io.Writer) {
	fmt.Fprint(w, `commands:
  load <file>          load a .bin or .hex image
  info                 image size, origin and checksum
  org [addr]           show or override the origin
  dump [addr [count]]  hex dump (defaults: org, 128 bytes)
  save <file>          write raw binary
  savehex <file>       write Intel HEX
  quit
`)
}
