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

package entropy

import (
	"github.com/pkg/errors"

	"github.com/flanglet/entro"
	"github.com/flanglet/entro/bitstream"
)

// ErrSymbolNotInAlphabet is returned when the input contains a byte the
// model was not built from.
var ErrSymbolNotInAlphabet = errors.New("entropy: symbol not present in model alphabet")

// ErrInvalidState is returned when a rANS state falls outside [L, bL) at
// a step boundary - either a logic bug in this package or, during
// decode, a corrupt artifact.
var ErrInvalidState = errors.New("entropy: rANS state outside [L, bL)")

// ErrSlotNotFound is returned when a decoded slot does not fall inside
// any symbol's [Cum[i], Cum[i]+Freq[i]) range - a corrupt cumulative
// table or a corrupt payload.
var ErrSlotNotFound = errors.New("entropy: slot not found in cumulative table")

// EncodeRANS runs the single-state rANS push loop: for each input
// symbol, renormalize (emit k-bit groups while x would overflow the
// symbol's pre-push bound) then push x into the new state. Returns the
// renormalization payload and the final state, to be carried in the
// artifact header.
func EncodeRANS(data []byte, m entro.Model, p Params) ([]byte, uint64, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	if len(data) == 0 {
		return nil, p.L, nil
	}

	idx := buildIndex(m.Alphabet)
	sink := bitstream.NewRansSink()
	x := p.L
	base := p.B * (p.L / uint64(m.M))

	for _, s := range data {
		i := idx[s]

		if i < 0 {
			return nil, 0, ErrSymbolNotInAlphabet
		}

		if x < p.L || x >= p.BL() {
			return nil, 0, ErrInvalidState
		}

		fs := uint64(m.Freq[i])
		cs := uint64(m.Cum[i])
		xMax := base * fs

		for x >= xMax {
			sink.PushGroup(x%p.B, p.K)
			x >>= p.K
		}

		x = (x/fs)*uint64(m.M) + cs + (x % fs)
	}

	payload, err := sink.Finalize()
	return payload, x, err
}

// DecodeRANS runs the reverse pop loop. Symbols are produced in reverse
// order internally; writing into out[j] from the end avoids a separate
// reverse pass over the output.
func DecodeRANS(payload []byte, length int, finalState uint64, m entro.Model, p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if length == 0 {
		return []byte{}, nil
	}

	src := bitstream.NewRansSource(payload)
	out := make([]byte, length)
	x := finalState

	for j := length - 1; j >= 0; j-- {
		if x < p.L || x >= p.BL() {
			return nil, ErrInvalidState
		}

		slot := int(x % uint64(m.M))
		i := m.Lookup(slot)

		if i < 0 {
			return nil, ErrSlotNotFound
		}

		out[j] = m.Alphabet[i]
		fs := uint64(m.Freq[i])
		cs := uint64(m.Cum[i])
		x = (x/uint64(m.M))*fs + uint64(slot) - cs

		for x < p.L {
			g, err := src.PopGroup(p.K)

			if err != nil {
				return nil, errors.Wrap(err, "entropy: rANS renormalization read")
			}

			x = x*p.B + g
		}
	}

	return out, nil
}
