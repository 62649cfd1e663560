package romfile

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteBin(t *testing.T) {
	var buf bytes.Buffer
	rom := []byte{0xC3, 0x03, 0x00, 0x76}
	if err := WriteBin(&buf, rom); err != nil {
		t.Fatalf("WriteBin: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), rom) {
		t.Errorf("WriteBin output = % X; want % X", buf.Bytes(), rom)
	}
}

func TestWriteHexKnownVector(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHex(&buf, 0, []byte{0xC3, 0x03, 0x00, 0x76}); err != nil {
		t.Fatalf("WriteHex: %v", err)
	}
	want := ":04000000C3030076C0\n:00000001FF\n"
	if buf.String() != want {
		t.Errorf("WriteHex output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteHexFullRecordWithOrg(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	var buf bytes.Buffer
	if err := WriteHex(&buf, 0x0100, data); err != nil {
		t.Fatalf("WriteHex: %v", err)
	}
	want := ":10010000000102030405060708090A0B0C0D0E0F77\n:00000001FF\n"
	if buf.String() != want {
		t.Errorf("WriteHex output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteHexSplitsRecords(t *testing.T) {
	data := make([]byte, 40)
	var buf bytes.Buffer
	if err := WriteHex(&buf, 0, data); err != nil {
		t.Fatalf("WriteHex: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 16 + 16 + 8 data bytes, then EOF.
	if len(lines) != 4 {
		t.Fatalf("got %d records; want 4", len(lines))
	}
	if !strings.HasPrefix(lines[2], ":08002000") {
		t.Errorf("third record = %q; want prefix :08002000", lines[2])
	}
	if lines[3] != ":00000001FF" {
		t.Errorf("EOF record = %q; want :00000001FF", lines[3])
	}
}

func TestHexRoundTrip(t *testing.T) {
	rom := make([]byte, 100)
	for i := range rom {
		rom[i] = byte(i * 7)
	}
	var buf bytes.Buffer
	if err := WriteHex(&buf, 0x2000, rom); err != nil {
		t.Fatalf("WriteHex: %v", err)
	}
	org, data, err := ReadHex(&buf)
	if err != nil {
		t.Fatalf("ReadHex: %v", err)
	}
	if org != 0x2000 {
		t.Errorf("org = 0x%04X; want 0x2000", org)
	}
	if !bytes.Equal(data, rom) {
		t.Errorf("round-trip data mismatch: got %d bytes, want %d", len(data), len(rom))
	}
}

func TestReadHexGapPadding(t *testing.T) {
	// Two records with a 2-byte hole between them.
	in := ":02000000AABB99\n:02000400CCDD51\n:00000001FF\n"
	org, data, err := ReadHex(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadHex: %v", err)
	}
	if org != 0 {
		t.Errorf("org = 0x%04X; want 0", org)
	}
	want := []byte{0xAA, 0xBB, 0xFF, 0xFF, 0xCC, 0xDD}
	if !bytes.Equal(data, want) {
		t.Errorf("data = % X; want % X", data, want)
	}
}

func TestReadHexChecksumMismatch(t *testing.T) {
	in := ":04000000C3030076C1\n:00000001FF\n"
	if _, _, err := ReadHex(strings.NewReader(in)); err == nil {
		t.Error("ReadHex accepted a bad checksum")
	}
}

func TestReadHexMissingEOF(t *testing.T) {
	in := ":04000000C3030076C0\n"
	if _, _, err := ReadHex(strings.NewReader(in)); err == nil {
		t.Error("ReadHex accepted input without an EOF record")
	}
}

func TestReadHexRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no record mark", "04000000C3030076C0\n:00000001FF\n"},
		{"odd digit count", ":0400000\n:00000001FF\n"},
		{"bad digit", ":04000000C30300G6C0\n:00000001FF\n"},
		{"unsupported record type", ":0400000200000000FA\n:00000001FF\n"},
	}
	for _, tc := range tests {
		if _, _, err := ReadHex(strings.NewReader(tc.in)); err == nil {
			t.Errorf("%s: ReadHex accepted %q", tc.name, tc.in)
		}
	}
}

func TestReadHexEmptyImage(t *testing.T) {
	_, data, err := ReadHex(strings.NewReader(":00000001FF\n"))
	if err != nil {
		t.Fatalf("ReadHex: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("data = % X; want empty", data)
	}
}
