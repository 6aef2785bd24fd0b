// Copyright (c) 2024 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gaissmai/bonsai/bonsaierr"
	"github.com/stretchr/testify/require"
)

func TestUint32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint32(&buf, 0xDEADBEEF))
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf.Bytes())

	got, err := ReadUint32(&buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), got)
}

func TestUint16RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUint16(&buf, 0x1234))
	require.Equal(t, []byte{0x12, 0x34}, buf.Bytes())

	got, err := ReadUint16(&buf)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), got)
}

func TestUint64RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	v := uint64(0x0066797883657302)
	require.NoError(t, WriteUint64(&buf, v))

	got, err := ReadUint64(&buf)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestBoolRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBool(&buf, true))
	require.NoError(t, WriteBool(&buf, false))

	got1, err := ReadBool(&buf)
	require.NoError(t, err)
	require.True(t, got1)

	got2, err := ReadBool(&buf)
	require.NoError(t, err)
	require.False(t, got2)
}

func TestMagicRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	const magic = 0x0066797883657302
	require.NoError(t, WriteMagic(&buf, magic))
	require.NoError(t, ReadMagic(&buf, magic))
}

func TestMagicMismatchIsFormatError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMagic(&buf, 0x1))
	err := ReadMagic(&buf, 0x2)
	require.Error(t, err)
	require.True(t, errors.Is(err, bonsaierr.ErrFormat))
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, "hello, bonsai"))

	got, err := ReadString(&buf)
	require.NoError(t, err)
	require.Equal(t, "hello, bonsai", got)
}

func TestStringEmptyRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteString(&buf, ""))

	got, err := ReadString(&buf)
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestStringTooLongIsFormatError(t *testing.T) {
	var buf bytes.Buffer
	huge := make([]byte, 0x10000)
	err := WriteString(&buf, string(huge))
	require.Error(t, err)
	require.True(t, errors.Is(err, bonsaierr.ErrFormat))
}

func TestRawBitsRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, true, true}
	var buf bytes.Buffer
	require.NoError(t, WriteRawBits(&buf, bits))

	got, err := ReadRawBits(&buf, len(bits))
	require.NoError(t, err)
	require.Equal(t, bits, got)
}

func TestRawBitsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRawBits(&buf, nil))

	got, err := ReadRawBits(&buf, 0)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReadUint32ShortReadErrors(t *testing.T) {
	buf := bytes.NewReader([]byte{0x01, 0x02})
	_, err := ReadUint32(buf)
	require.Error(t, err)
}
