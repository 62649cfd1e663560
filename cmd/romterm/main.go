// romterm is a raw serial console for a RetroShield board. It bridges
// the local terminal to the board's serial port and can stream a ROM
// image down the line first.
//
// The device and baud rate default from the ROMTERM_DEVICE and
// ROMTERM_BAUD environment variables. Ctrl-] closes the session.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/term"
	"github.com/xyproto/env/v2"

	"z80gen/pkg/romfile"
)

const exitKey = 0x1D // Ctrl-]

func main() {
	dev := flag.String("dev", env.Str("ROMTERM_DEVICE", "/dev/ttyUSB0"), "serial device")
	baud := flag.Int("baud", env.Int("ROMTERM_BAUD", 115200), "baud rate")
	send := flag.String("send", "", "ROM image (.bin or .hex) to stream before opening the console")
	flag.Parse()

	if err := run(*dev, *baud, *send); err != nil {
		fmt.Fprintf(os.Stderr, "romterm: %v\n", err)
		os.Exit(1)
	}
}

func run(dev string, baud int, send string) error {
	serial, err := term.Open(dev, term.Speed(baud), term.RawMode)
	if err != nil {
		return fmt.Errorf("open %s: %w", dev, err)
	}
	defer serial.Close()
	defer serial.Restore()

	if send != "" {
		n, err := sendImage(serial, send)
		if err != nil {
			return fmt.Errorf("send %s: %w", send, err)
		}
		fmt.Printf("sent %d bytes from %s\n", n, send)
	}

	console, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return fmt.Errorf("open console: %w", err)
	}
	defer console.Close()
	defer console.Restore()

	fmt.Printf("connected to %s at %d baud, Ctrl-] exits\r\n", dev, baud)

	// Board output straight to the screen; the reader goroutine dies
	// with the process once the keyboard loop returns.
	go io.Copy(os.Stdout, serial)

	buf := make([]byte, 1)
	for {
		n, err := console.Read(buf)
		if err != nil {
			break
		}
		if n == 0 {
			continue
		}
		if buf[0] == exitKey {
			break
		}
		if _, err := serial.Write(buf[:n]); err != nil {
			return fmt.Errorf("write %s: %w", dev, err)
		}
	}
	fmt.Print("\r\n")
	return nil
}

// sendImage streams a ROM image over the serial line and reports how
// many bytes went out.
func sendImage(w io.Writer, path string) (int, error) {
	_, data, err := romfile.Load(path)
	if err != nil {
		return 0, err
	}
	return w.Write(data)
}
