// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package format holds the low-level binary primitives shared by every
// wire form in bonsai (§6 of the spec): big-endian fixed-width integers,
// length-prefixed strings, and magic-number framing for composite blobs.
//
// The shape follows scigolib/hdf5's internal/utils endian helpers: thin
// wrappers around encoding/binary that read/write directly against an
// io.Writer/io.Reader, with no buffering beyond what a single field needs.
package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gaissmai/bonsai/bonsaierr"
)

// Order is the byte order used for every multi-byte field on the wire.
var Order = binary.BigEndian

// WriteUint32 writes v as a big-endian u32.
func WriteUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	Order.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint32 reads a big-endian u32.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return Order.Uint32(buf[:]), nil
}

// WriteUint16 writes v as a big-endian u16.
func WriteUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	Order.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint16 reads a big-endian u16.
func ReadUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return Order.Uint16(buf[:]), nil
}

// WriteUint64 writes v as a big-endian u64, used for magic numbers.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	Order.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint64 reads a big-endian u64.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return Order.Uint64(buf[:]), nil
}

// WriteByte writes a single tag or boolean byte.
func WriteByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

// ReadByte reads a single tag or boolean byte.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteBool writes v as one byte, 1 for true.
func WriteBool(w io.Writer, v bool) error {
	if v {
		return WriteByte(w, 1)
	}
	return WriteByte(w, 0)
}

// ReadBool reads one byte and reports whether it was non-zero.
func ReadBool(r io.Reader) (bool, error) {
	b, err := ReadByte(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// WriteMagic writes the 64-bit magic number identifying a composite
// blob's format, per spec §6 ("BONSAI/2" for the full-binary tree).
func WriteMagic(w io.Writer, magic uint64) error {
	return WriteUint64(w, magic)
}

// ReadMagic reads a 64-bit magic number and fails with ErrFormat if it
// does not equal want.
func ReadMagic(r io.Reader, want uint64) error {
	got, err := ReadUint64(r)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: bad magic %#x, want %#x", bonsaierr.ErrFormat, got, want)
	}
	return nil
}

// WriteString writes s as a u16 byte length followed by s's standard UTF-8
// bytes, unchanged. The bytes match the modified UTF-8 of the classic
// writeUTF form only for strings with no NUL and no character outside the
// Basic Multilingual Plane: NUL is written as one zero byte and such
// characters as four-byte sequences, not as the two- and six-byte forms
// writeUTF emits. Strings longer than 65535 bytes cannot be represented
// and are a format error.
func WriteString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("%w: string of %d bytes exceeds u16 length prefix", bonsaierr.ErrFormat, len(s))
	}
	if err := WriteUint16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// ReadString reads a u16-length-prefixed UTF-8 byte string.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadUint16(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteRawBits writes the ceil(len(bits)/8) packed bytes of a raw boolean
// sequence, LSB-first within each byte, per spec §6.
func WriteRawBits(w io.Writer, bits []bool) error {
	buf := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	_, err := w.Write(buf)
	return err
}

// ReadRawBits reads n packed bits, LSB-first within each byte.
func ReadRawBits(r io.Reader, n int) ([]bool, error) {
	buf := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = buf[i/8]&(1<<uint(i%8)) != 0
	}
	return bits, nil
}
