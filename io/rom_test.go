package io

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestRom_Unmarshal(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	err := rom.Unmarshal(bytes.NewReader([]byte{0x01, 0x00, 0x00, 0x80, 0x34, 0x12}))
	assert.NoError(err)
	assert.Equal([]uint16{0x0001, 0x8000, 0x1234}, rom.Data)

	err = rom.Unmarshal(bytes.NewReader([]byte{0x01, 0x00, 0x02}))
	assert.ErrorIs(err, ErrRomOdd)

	err = rom.Unmarshal(bytes.NewReader(make([]byte, ROM_WORDS*2+2)))
	assert.ErrorIs(err, ErrRomSize)

	err = rom.Unmarshal(bytes.NewReader(nil))
	assert.NoError(err)
	assert.Empty(rom.Data)
}

func TestRom_Open(t *testing.T) {
	assert := assert.New(t)

	filesys := fstest.MapFS{
		"challenge.bin": &fstest.MapFile{Data: []byte{0x15, 0x00, 0x00, 0x00}},
		"odd.bin":       &fstest.MapFile{Data: []byte{0x15}},
	}

	rom := &Rom{}
	assert.NoError(rom.Open(filesys, "challenge.bin"))
	assert.Equal([]uint16{21, 0}, rom.Data)

	err := rom.Open(filesys, "odd.bin")
	assert.ErrorIs(err, ErrRomOdd)
	assert.Contains(err.Error(), "odd.bin")

	assert.Error(rom.Open(filesys, "missing.bin"))
}
