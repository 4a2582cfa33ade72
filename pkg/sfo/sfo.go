// SPDX-License-Identifier: MPL-2.0

// Package sfo reads PSF (param.sfo) system files.
//
// A PSF file is the metadata blob every VPK carries at sce_sys/param.sfo.
// It is a flat key/value table: a fixed little-endian header, an index of
// fixed-size entries, a NUL-terminated key table and a raw data table.
// This package decodes the table for display purposes; it does not write
// or validate console-specific semantics.
package sfo

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

// Format identifies the encoding of one parameter's data.
type Format uint16

const (
	// FormatUTF8Special is UTF-8 text without a NUL terminator.
	FormatUTF8Special Format = 0x0004
	// FormatUTF8 is NUL-terminated UTF-8 text.
	FormatUTF8 Format = 0x0204
	// FormatUint32 is a 32-bit little-endian unsigned integer.
	FormatUint32 Format = 0x0404
)

// String returns a short human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatUTF8Special:
		return "utf8s"
	case FormatUTF8:
		return "utf8"
	case FormatUint32:
		return "uint32"
	default:
		return fmt.Sprintf("unknown(0x%04x)", uint16(f))
	}
}

// Param is one decoded key/value pair.
type Param struct {
	// Key is the parameter name (e.g. "TITLE", "TITLE_ID").
	Key string
	// Format is the declared data encoding.
	Format Format
	// Data is the raw value, Len bytes from the data table.
	Data []byte
}

// Text returns the parameter value as a string with trailing NULs removed.
// For uint32 parameters it returns the decimal representation.
func (p Param) Text() string {
	if p.Format == FormatUint32 {
		return fmt.Sprintf("%d", p.Uint32())
	}
	return strings.TrimRight(string(p.Data), "\x00")
}

// Uint32 decodes the value as a little-endian uint32. It returns 0 when the
// data is shorter than four bytes.
func (p Param) Uint32() uint32 {
	if len(p.Data) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(p.Data)
}

// File is a decoded param.sfo.
type File struct {
	// Version is the PSF format version (typically "1.01").
	Version string
	// Params holds the parameters in index order.
	Params []Param
}

// Lookup returns the parameter with the given key.
func (f *File) Lookup(key string) (Param, bool) {
	for _, p := range f.Params {
		if p.Key == key {
			return p, true
		}
	}
	return Param{}, false
}

const (
	headerSize     = 20
	indexEntrySize = 16
)

// magic is the PSF header signature.
var magic = []byte{0x00, 'P', 'S', 'F'}

// Parse decodes a PSF blob. Malformed input yields a descriptive error;
// offsets and lengths are bounds-checked so truncated files never panic.
func Parse(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("file too short for PSF header: %d bytes", len(data))
	}
	if string(data[0:4]) != string(magic) {
		return nil, fmt.Errorf("not a PSF file: bad magic % x", data[0:4])
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	keyTableStart := binary.LittleEndian.Uint32(data[8:12])
	dataTableStart := binary.LittleEndian.Uint32(data[12:16])
	numEntries := binary.LittleEndian.Uint32(data[16:20])

	indexEnd := uint64(headerSize) + uint64(numEntries)*indexEntrySize
	if indexEnd > uint64(len(data)) {
		return nil, fmt.Errorf("index table truncated: %d entries need %d bytes, file has %d", numEntries, indexEnd, len(data))
	}
	if uint64(keyTableStart) > uint64(len(data)) || uint64(dataTableStart) > uint64(len(data)) {
		return nil, fmt.Errorf("table offsets exceed file size")
	}

	file := &File{
		Version: fmt.Sprintf("%d.%02d", version>>8&0xff, version&0xff),
		Params:  make([]Param, 0, numEntries),
	}

	for i := uint32(0); i < numEntries; i++ {
		idx := data[headerSize+i*indexEntrySize:]
		keyOffset := binary.LittleEndian.Uint16(idx[0:2])
		format := Format(binary.LittleEndian.Uint16(idx[2:4]))
		dataLen := binary.LittleEndian.Uint32(idx[4:8])
		dataOffset := binary.LittleEndian.Uint32(idx[12:16])

		key, err := readKey(data, keyTableStart, keyOffset)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		start := uint64(dataTableStart) + uint64(dataOffset)
		end := start + uint64(dataLen)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("entry %d (%s): data exceeds file size", i, key)
		}

		file.Params = append(file.Params, Param{
			Key:    key,
			Format: format,
			Data:   data[start:end],
		})
	}

	return file, nil
}

// ParseFile reads and decodes a param.sfo from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// readKey extracts the NUL-terminated key at the given key-table offset.
func readKey(data []byte, tableStart uint32, offset uint16) (string, error) {
	start := uint64(tableStart) + uint64(offset)
	if start >= uint64(len(data)) {
		return "", fmt.Errorf("key offset exceeds file size")
	}
	rest := data[start:]
	for i, b := range rest {
		if b == 0 {
			return string(rest[:i]), nil
		}
	}
	return "", fmt.Errorf("unterminated key at offset %d", start)
}
