// Package bitpack accumulates single bits into MSB-first bytes and reads
// them back, honouring a count of padding bits in the final byte.
package bitpack

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// Packer appends bits to an underlying writer, one byte per 8 bits.
type Packer struct {
	w    *bitio.Writer
	bits uint64
}

func NewPacker(w io.Writer) *Packer {
	return &Packer{w: bitio.NewWriter(w)}
}

func (p *Packer) WriteBit(bit bool) error {
	if err := p.w.WriteBool(bit); err != nil {
		return err
	}
	p.bits++
	return nil
}

// WriteCode writes a string of '0' and '1' characters, first character
// first. Any character other than '1' is written as a zero bit.
func (p *Packer) WriteCode(code string) error {
	for i := 0; i < len(code); i++ {
		if err := p.WriteBit(code[i] == '1'); err != nil {
			return err
		}
	}
	return nil
}

// Bits reports how many bits have been written so far.
func (p *Packer) Bits() uint64 {
	return p.bits
}

// Flush shifts a partial byte into the high bits, pads the low bits with
// zeros and emits it. It returns the number of padding bits.
func (p *Packer) Flush() (uint8, error) {
	padding, err := p.w.Align()
	if err != nil {
		return 0, err
	}
	return padding, p.w.Close()
}

// Unpacker yields the meaningful bits of a payload. Every byte contributes
// 8 bits except the last, which contributes 8 - padding.
type Unpacker struct {
	r         *bitio.Reader
	remaining uint64
}

func NewUnpacker(payload []byte, padding uint8) *Unpacker {
	var remaining uint64
	if len(payload) > 0 {
		remaining = uint64(len(payload))*8 - uint64(padding&0x07)
	}
	return &Unpacker{
		r:         bitio.NewReader(bytes.NewReader(payload)),
		remaining: remaining,
	}
}

// Remaining reports how many meaningful bits are left.
func (u *Unpacker) Remaining() uint64 {
	return u.remaining
}

// ReadBit returns the next meaningful bit, or io.EOF once they are exhausted.
func (u *Unpacker) ReadBit() (bool, error) {
	if u.remaining == 0 {
		return false, io.EOF
	}
	bit, err := u.r.ReadBool()
	if err != nil {
		return false, err
	}
	u.remaining--
	return bit, nil
}
