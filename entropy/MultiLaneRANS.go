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

// ErrLaneCountMismatch is returned when a multi-lane header's num_lanes
// disagrees with the number of final states it carries.
var ErrLaneCountMismatch = errors.New("entropy: num_lanes does not match state count")

// DefaultNumLanes is the lane count this codec uses unless told
// otherwise, matching original_source/python/algorithms/multi_lane_rans.py.
const DefaultNumLanes = 4

// EncodeMultiLaneRANS interleaves numLanes independent rANS states over
// the input, each coding every numLanes-th position, round-robin. All
// lanes push their renormalization groups into one shared sink, in the
// order the encoder naturally emits them (lane 0's step, then lane 1's,
// ...), so a single RansSink/RansSource pair - the same ones
// single-lane rANS uses - already gives the correct interleaving; only
// the per-symbol state selection differs from EncodeRANS.
func EncodeMultiLaneRANS(data []byte, m entro.Model, p Params, numLanes int) ([]byte, []uint64, int, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, 0, err
	}

	if numLanes < 1 {
		return nil, nil, 0, errors.Errorf("entropy: num_lanes must be >= 1, got %d", numLanes)
	}

	rem := len(data) % numLanes

	if len(data) == 0 {
		states := make([]uint64, numLanes)

		for i := range states {
			states[i] = p.L
		}

		return nil, states, rem, nil
	}

	idx := buildIndex(m.Alphabet)
	sink := bitstream.NewRansSink()
	x := make([]uint64, numLanes)

	for i := range x {
		x[i] = p.L
	}

	base := p.B * (p.L / uint64(m.M))
	lane := 0

	for _, s := range data {
		i := idx[s]

		if i < 0 {
			return nil, nil, 0, ErrSymbolNotInAlphabet
		}

		if x[lane] < p.L || x[lane] >= p.BL() {
			return nil, nil, 0, ErrInvalidState
		}

		fs := uint64(m.Freq[i])
		cs := uint64(m.Cum[i])
		xMax := base * fs

		for x[lane] >= xMax {
			sink.PushGroup(x[lane]%p.B, p.K)
			x[lane] >>= p.K
		}

		x[lane] = (x[lane]/fs)*uint64(m.M) + cs + (x[lane] % fs)
		lane = (lane + 1) % numLanes
	}

	payload, err := sink.Finalize()
	return payload, x, rem, err
}

// DecodeMultiLaneRANS reverses EncodeMultiLaneRANS. The lane visitation
// order is uniquely determined by rem and numLanes: the decoder starts
// at the lane that produced the LAST input symbol and walks lanes
// backwards, popping exactly one symbol per step until length symbols
// have been emitted.
func DecodeMultiLaneRANS(payload []byte, length int, states []uint64, rem, numLanes int, m entro.Model, p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if len(states) != numLanes {
		return nil, errors.Wrapf(ErrLaneCountMismatch, "len(states)=%d numLanes=%d", len(states), numLanes)
	}

	if length == 0 {
		return []byte{}, nil
	}

	x := make([]uint64, numLanes)
	copy(x, states)

	src := bitstream.NewRansSource(payload)
	out := make([]byte, length)
	lane := ((rem-1)%numLanes + numLanes) % numLanes

	for j := length - 1; j >= 0; j-- {
		if x[lane] < p.L || x[lane] >= p.BL() {
			return nil, ErrInvalidState
		}

		slot := int(x[lane] % uint64(m.M))
		i := m.Lookup(slot)

		if i < 0 {
			return nil, ErrSlotNotFound
		}

		out[j] = m.Alphabet[i]
		fs := uint64(m.Freq[i])
		cs := uint64(m.Cum[i])
		x[lane] = (x[lane]/uint64(m.M))*fs + uint64(slot) - cs

		for x[lane] < p.L {
			g, err := src.PopGroup(p.K)

			if err != nil {
				return nil, errors.Wrap(err, "entropy: multi-lane rANS renormalization read")
			}

			x[lane] = x[lane]*p.B + g
		}

		lane = (lane - 1 + numLanes) % numLanes
	}

	return out, nil
}
