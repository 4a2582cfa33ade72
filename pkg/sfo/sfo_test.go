// SPDX-License-Identifier: MPL-2.0

package sfo

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// rawParam is one entry fed to buildPSF.
type rawParam struct {
	key    string
	format Format
	data   []byte
}

// buildPSF assembles a syntactically valid PSF blob from the given params.
func buildPSF(t *testing.T, params []rawParam) []byte {
	t.Helper()

	var keyTable, dataTable, index bytes.Buffer
	for _, p := range params {
		keyOffset := keyTable.Len()
		keyTable.WriteString(p.key)
		keyTable.WriteByte(0)

		dataOffset := dataTable.Len()
		dataTable.Write(p.data)

		entry := make([]byte, indexEntrySize)
		binary.LittleEndian.PutUint16(entry[0:2], uint16(keyOffset))
		binary.LittleEndian.PutUint16(entry[2:4], uint16(p.format))
		binary.LittleEndian.PutUint32(entry[4:8], uint32(len(p.data)))
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(p.data)))
		binary.LittleEndian.PutUint32(entry[12:16], uint32(dataOffset))
		index.Write(entry)
	}

	keyTableStart := headerSize + index.Len()
	dataTableStart := keyTableStart + keyTable.Len()

	var blob bytes.Buffer
	blob.Write(magic)
	binary.Write(&blob, binary.LittleEndian, uint32(0x0101))
	binary.Write(&blob, binary.LittleEndian, uint32(keyTableStart))
	binary.Write(&blob, binary.LittleEndian, uint32(dataTableStart))
	binary.Write(&blob, binary.LittleEndian, uint32(len(params)))
	blob.Write(index.Bytes())
	blob.Write(keyTable.Bytes())
	blob.Write(dataTable.Bytes())
	return blob.Bytes()
}

func uint32Data(v uint32) []byte {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, v)
	return data
}

func TestParse(t *testing.T) {
	blob := buildPSF(t, []rawParam{
		{key: "APP_VER", format: FormatUTF8, data: []byte("01.00\x00")},
		{key: "PARENTAL_LEVEL", format: FormatUint32, data: uint32Data(1)},
		{key: "TITLE", format: FormatUTF8, data: []byte("Sample Homebrew\x00")},
		{key: "TITLE_ID", format: FormatUTF8, data: []byte("VPKG00001\x00")},
	})

	f, err := Parse(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Version != "1.01" {
		t.Errorf("version = %q, want %q", f.Version, "1.01")
	}
	if len(f.Params) != 4 {
		t.Fatalf("got %d params, want 4", len(f.Params))
	}

	title, ok := f.Lookup("TITLE")
	if !ok {
		t.Fatal("TITLE not found")
	}
	if title.Text() != "Sample Homebrew" {
		t.Errorf("TITLE = %q, want %q", title.Text(), "Sample Homebrew")
	}

	level, ok := f.Lookup("PARENTAL_LEVEL")
	if !ok {
		t.Fatal("PARENTAL_LEVEL not found")
	}
	if level.Uint32() != 1 {
		t.Errorf("PARENTAL_LEVEL = %d, want 1", level.Uint32())
	}
	if level.Text() != "1" {
		t.Errorf("PARENTAL_LEVEL text = %q, want %q", level.Text(), "1")
	}

	if _, ok := f.Lookup("MISSING"); ok {
		t.Error("Lookup of unknown key should report absence")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	valid := buildPSF(t, []rawParam{
		{key: "TITLE", format: FormatUTF8, data: []byte("X\x00")},
	})

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantMsg string
	}{
		{
			name:    "empty input",
			mutate:  func([]byte) []byte { return nil },
			wantMsg: "too short",
		},
		{
			name: "bad magic",
			mutate: func(b []byte) []byte {
				b[0] = 'X'
				return b
			},
			wantMsg: "bad magic",
		},
		{
			name: "truncated index",
			mutate: func(b []byte) []byte {
				return b[:headerSize+4]
			},
			wantMsg: "truncated",
		},
		{
			name: "entry count past end of file",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[16:20], 1000)
				return b
			},
			wantMsg: "truncated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := tt.mutate(append([]byte(nil), valid...))
			_, err := Parse(blob)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	blob := buildPSF(t, []rawParam{
		{key: "TITLE", format: FormatUTF8, data: []byte("From Disk\x00")},
	})
	path := filepath.Join(t.TempDir(), "param.sfo")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	title, _ := f.Lookup("TITLE")
	if title.Text() != "From Disk" {
		t.Errorf("TITLE = %q, want %q", title.Text(), "From Disk")
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.sfo")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatUTF8, "utf8"},
		{FormatUTF8Special, "utf8s"},
		{FormatUint32, "uint32"},
		{Format(0x1234), "unknown(0x1234)"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%#04x).String() = %q, want %q", uint16(tt.format), got, tt.want)
		}
	}
}
