// Package romfile serializes finished ROM images to raw binary and
// Intel HEX, and reads Intel HEX back for tooling. It only sees fully
// resolved byte sequences; nothing here inspects or alters code.
package romfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// hexRecordLen is the data-byte count per Intel HEX record.
const hexRecordLen = 16

// WriteBin writes the image verbatim.
func WriteBin(w io.Writer, rom []byte) error {
	_, err := w.Write(rom)
	return err
}

// SaveBin writes the image to a file.
func SaveBin(path string, rom []byte) error {
	return os.WriteFile(path, rom, 0o644)
}

// WriteHex writes the image as Intel HEX: 16-byte type-00 data records
// starting at org, terminated by an EOF record.
func WriteHex(w io.Writer, org uint16, rom []byte) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < len(rom); i += hexRecordLen {
		chunk := rom[i:min(i+hexRecordLen, len(rom))]
		addr := org + uint16(i)

		checksum := byte(len(chunk))
		checksum += byte(addr >> 8)
		checksum += byte(addr)
		for _, b := range chunk {
			checksum += b
		}
		checksum = ^checksum + 1

		if _, err := fmt.Fprintf(bw, ":%02X%04X00", len(chunk), addr); err != nil {
			return err
		}
		for _, b := range chunk {
			if _, err := fmt.Fprintf(bw, "%02X", b); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%02X\n", checksum); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, ":00000001FF"); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveHex writes the image to a file in Intel HEX format.
func SaveHex(path string, org uint16, rom []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHex(f, org, rom); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadHex parses Intel HEX data records into a contiguous image. The
// returned org is the address of the lowest record; gaps between
// records are filled with 0xFF, the erased state of a ROM.
func ReadHex(r io.Reader) (org uint16, data []byte, err error) {
	cells := make(map[uint16]byte)
	sawEOF := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if sawEOF {
			return 0, nil, fmt.Errorf("line %d: data after EOF record", lineNo)
		}
		if line[0] != ':' {
			return 0, nil, fmt.Errorf("line %d: missing ':' record mark", lineNo)
		}
		raw, err := decodeHexBytes(line[1:])
		if err != nil {
			return 0, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(raw) < 5 {
			return 0, nil, fmt.Errorf("line %d: record too short", lineNo)
		}

		count := int(raw[0])
		addr := uint16(raw[1])<<8 | uint16(raw[2])
		kind := raw[3]
		if len(raw) != count+5 {
			return 0, nil, fmt.Errorf("line %d: record length %d does not match count %d", lineNo, len(raw), count)
		}
		var sum byte
		for _, b := range raw {
			sum += b
		}
		if sum != 0 {
			return 0, nil, fmt.Errorf("line %d: checksum mismatch", lineNo)
		}

		switch kind {
		case 0x00:
			for i, b := range raw[4 : 4+count] {
				cells[addr+uint16(i)] = b
			}
		case 0x01:
			sawEOF = true
		default:
			return 0, nil, fmt.Errorf("line %d: unsupported record type 0x%02X", lineNo, kind)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, err
	}
	if !sawEOF {
		return 0, nil, fmt.Errorf("missing EOF record")
	}
	if len(cells) == 0 {
		return 0, nil, nil
	}

	lo, hi := uint16(0xFFFF), uint16(0)
	for addr := range cells {
		if addr < lo {
			lo = addr
		}
		if addr > hi {
			hi = addr
		}
	}
	data = make([]byte, int(hi)-int(lo)+1)
	for i := range data {
		data[i] = 0xFF
	}
	for addr, b := range cells {
		data[addr-lo] = b
	}
	return lo, data, nil
}

func decodeHexBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd hex digit count")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, err := hexDigit(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %q", c)
}

// LoadHex reads an Intel HEX file.
func LoadHex(path string) (org uint16, data []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()
	return ReadHex(f)
}

// Load reads a ROM image by extension: .hex/.ihx as Intel HEX,
// anything else as raw binary at org 0.
func Load(path string) (org uint16, data []byte, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihx":
		return LoadHex(path)
	default:
		data, err = os.ReadFile(path)
		return 0, data, err
	}
}
