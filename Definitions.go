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

// Package entro defines the top level types shared across the entro
// entropy codec: the alphabet/frequency/cumulative table triplet that
// every codec core consumes, and the progress event plumbing the
// façade uses to report encode/decode milestones to a Listener.
//
// The actual codec cores live in sub-packages: model (frequency table
// construction), bitstream (bit sink/source), entropy (AC, rANS,
// multi-lane rANS) and codec (the façade tying a core to an Artifact).
package entro

// Alphabet is the sorted sequence of distinct byte values observed in
// an input buffer. Length is in [0, 256].
type Alphabet []byte

// Freq is the quantized frequency table, one positive count per
// alphabet symbol. Sum(Freq) equals the model's denominator M.
type Freq []int

// Cum is the exclusive cumulative sum of Freq: Cum[i] = sum(Freq[:i]).
// Cum[0] is always 0; Cum is strictly increasing since every Freq[i] >= 1.
type Cum []int

// Model bundles the alphabet with its quantized frequency and
// cumulative tables, as produced by package model's BuildModel.
type Model struct {
	Alphabet Alphabet
	Freq     Freq
	Cum      Cum
	M        int
}

// IndexOf returns the position of sym in the alphabet, or -1 if absent.
// Linear scan: the alphabet is small (<=256 entries) so a map is not
// worth the allocation for the sizes this codec targets.
func (m *Model) IndexOf(sym byte) int {
	for i, a := range m.Alphabet {
		if a == sym {
			return i
		}
	}
	return -1
}

// Lookup finds the unique symbol index i such that Cum[i] <= slot < Cum[i]+Freq[i].
// This is the linear scan pop_s requires; a reverse slot->index table is
// an optional performance layer (see entropy.FastLookup), not a contract.
func (m *Model) Lookup(slot int) int {
	for i, c := range m.Cum {
		if slot >= c && slot < c+m.Freq[i] {
			return i
		}
	}
	return -1
}

const (
	EvtEncodeStart = iota // Encode starts
	EvtModelBuilt         // Frequency model has been constructed
	EvtEncodeEnd          // Encode ends
	EvtDecodeStart        // Decode starts
	EvtDecodeEnd          // Decode ends
)

// Event is a lifecycle notification emitted by the façade while
// encoding or decoding, pared down to the handful of milestones a
// single-shot codec call actually has.
type Event struct {
	Type   int
	Length int
	Msg    string
}

// Listener receives Events. The façade notifies every registered
// Listener synchronously and in order; a CLI or log sink can use this
// to report progress without the codec core depending on any logging
// library directly.
type Listener interface {
	ProcessEvent(evt Event)
}
