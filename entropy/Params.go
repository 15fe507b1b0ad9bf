/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package entropy implements the three codec cores this library
// specifies: AC (exact-rational arithmetic coding), RANS (single-state
// range-ANS) and MultiLaneRANS (N-lane interleaved range-ANS). All three
// operate on a finite byte buffer and a pre-built entro.Model.
package entropy

import "github.com/pkg/errors"

// Params holds the rANS renormalization parameters: k bits are emitted
// per renorm step, b = 2^k is the emit base, L is the lower bound of
// the normalized state window and M is the quantization denominator.
// Defaults: k=8, b=256, L=2^23, M=4096.
type Params struct {
	K uint
	B uint64
	L uint64
	M int
}

// DefaultParams returns the standard rANS parameter set used when a
// caller does not supply its own.
func DefaultParams() Params {
	return Params{K: 8, B: 256, L: 1 << 23, M: 4096}
}

// BL returns b*L, the exclusive upper bound of the state window.
func (p Params) BL() uint64 {
	return p.B * p.L
}

// Validate checks the renormalization invariants of (k,b,L,M):
// b must equal 2^k, L must be >= b and a multiple of it, and L must be
// strictly greater than M and a multiple of it.
func (p Params) Validate() error {
	if p.B != 1<<p.K {
		return errors.Errorf("entropy: b=%d is not 2^k for k=%d", p.B, p.K)
	}

	if p.L < p.B || p.L%p.B != 0 {
		return errors.Errorf("entropy: L=%d must be >= b=%d and a multiple of it", p.L, p.B)
	}

	if uint64(p.M) >= p.L || p.L%uint64(p.M) != 0 {
		return errors.Errorf("entropy: L=%d must be > M=%d and a multiple of it", p.L, p.M)
	}

	return nil
}

func buildIndex(alphabet []byte) [256]int {
	var idx [256]int

	for i := range idx {
		idx[i] = -1
	}

	for i, a := range alphabet {
		idx[a] = i
	}

	return idx
}
