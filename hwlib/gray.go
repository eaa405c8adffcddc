// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/desim"
)

// Bin2Gray returns a binary to Gray code encoder. Unlike other combinational
// parts, it only evaluates its output after b changes.
//
//	Inputs: b[width]
//	Outputs: g[width]
//	Function: g[i] = b[i+1] ^ b[i], with b[width] = 0
//
func Bin2Gray(width uint, b, g *desim.Signal) desim.Process {
	checkSignals("bin2gray", b, g)
	checkWidth("bin2gray", width, b, g)
	return desim.NewProcess("bin2gray", func(p *desim.Proc) {
		for {
			p.WaitOn(b)
			v := b.Read()
			for i := uint(0); i < width; i++ {
				lo, err := v.Bit(i)
				if err != nil {
					panic(err)
				}
				hi, err := v.Bit(i + 1)
				if err != nil {
					// bit past the declared width of b
					hi = 0
				}
				if err = g.WriteBit(i, hi^lo); err != nil {
					panic(err)
				}
			}
		}
	})
}

// Gray2Bin returns a Gray code to binary decoder.
//
//	Inputs: g[width]
//	Outputs: b[width]
//	Function: b[i] = g[width-1] ^ g[width-2] ^ ... ^ g[i]
//
func Gray2Bin(width uint, g, b *desim.Signal) desim.Process {
	checkSignals("gray2bin", g, b)
	checkWidth("gray2bin", width, g, b)
	return comb("gray2bin", func() {
		v := g.Read()
		var acc uint
		for i := int(width) - 1; i >= 0; i-- {
			bit, err := v.Bit(uint(i))
			if err != nil {
				panic(err)
			}
			acc ^= bit
			if err = b.WriteBit(uint(i), acc); err != nil {
				panic(err)
			}
		}
	}, g)
}

// Gray returns the reflected binary Gray code of v.
//
func Gray(v uint64) uint64 {
	return v ^ v>>1
}
