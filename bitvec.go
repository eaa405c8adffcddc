// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package desim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxWidth is the maximum width of a BitVector.
//
const MaxWidth = 64

// A BitVector is an unsigned integer value with an optional bit width. When
// the width is non-zero, the value is always kept modulo 2^width. A zero width
// means unbounded (up to MaxWidth bits).
//
// BitVectors are values and can be copied freely.
//
type BitVector struct {
	v uint64
	w uint
}

func mask(w uint) uint64 {
	if w == 0 || w >= MaxWidth {
		return ^uint64(0)
	}
	return 1<<w - 1
}

// Bits returns a BitVector of the given width. Out of range values wrap
// around. A width greater than MaxWidth is clamped to MaxWidth.
//
func Bits(v uint64, width uint) BitVector {
	if width > MaxWidth {
		width = MaxWidth
	}
	return BitVector{v: v & mask(width), w: width}
}

// Int returns an unbounded BitVector.
//
func Int(v uint64) BitVector {
	return BitVector{v: v}
}

// Uint64 returns the value of b.
//
func (b BitVector) Uint64() uint64 { return b.v }

// Width returns the declared width of b. Zero means unbounded.
//
func (b BitVector) Width() uint { return b.w }

func (b BitVector) checkIndex(i uint) error {
	if b.w != 0 && i >= b.w || i >= MaxWidth {
		return errors.Wrapf(ErrWidth, "bit %d of %d bits vector", i, b.bitLen())
	}
	return nil
}

func (b BitVector) bitLen() uint {
	if b.w == 0 {
		return MaxWidth
	}
	return b.w
}

// Bit returns bit i of b (0 or 1).
//
func (b BitVector) Bit(i uint) (uint, error) {
	if err := b.checkIndex(i); err != nil {
		return 0, err
	}
	return uint(b.v>>i) & 1, nil
}

// SetBit returns a copy of b with bit i set to the lsb of bit.
//
func (b BitVector) SetBit(i uint, bit uint) (BitVector, error) {
	if err := b.checkIndex(i); err != nil {
		return b, err
	}
	if bit&1 != 0 {
		b.v |= 1 << i
	} else {
		b.v &^= 1 << i
	}
	return b, nil
}

// Slice returns bits [lo, hi) of b as a new BitVector of width hi-lo.
//
func (b BitVector) Slice(hi, lo uint) (BitVector, error) {
	if hi <= lo {
		return BitVector{}, errors.Errorf("invalid slice [%d:%d]", hi, lo)
	}
	if err := b.checkIndex(hi - 1); err != nil {
		return BitVector{}, err
	}
	return Bits(b.v>>lo, hi-lo), nil
}

// Resize returns the value of b with the given width, wrapping it if
// necessary.
//
func (b BitVector) Resize(width uint) BitVector {
	return Bits(b.v, width)
}

// Equal returns true if a and b have the same value, regardless of their
// width.
//
func (b BitVector) Equal(a BitVector) bool {
	return a.v == b.v
}

// Bin returns the binary representation of b, zero padded to its width.
// Unbounded vectors are printed without leading zeroes.
//
func (b BitVector) Bin() string {
	s := strconv.FormatUint(b.v, 2)
	if n := int(b.w) - len(s); n > 0 {
		s = strings.Repeat("0", n) + s
	}
	return s
}

// String implements fmt.Stringer. It returns the same as Bin.
//
func (b BitVector) String() string {
	return b.Bin()
}
