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

// Package bitstream provides the two bit-stream views the codec cores
// need: a LIFO k-bit group stack for rANS renormalization (RansSink /
// RansSource) and a FIFO single-bit stream for arithmetic coding
// (BitSink / BitSource). Both are built on github.com/icza/bitio rather
// than a hand-rolled accumulator, since a forward-only 64-bit
// accumulator has no backward-read primitive, which rANS decoding
// requires.
package bitstream

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

type group struct {
	value uint64
	width uint8
}

// RansSink accumulates the k-bit renormalization groups a rANS encoder
// emits, in the chronological order the encoder pushes them. Finalize
// writes them out in the REVERSE of that order: decoding then only ever
// has to read forward, and the group it reads first is the one the
// encoder pushed last, giving LIFO pop semantics without the decoder
// needing random access into the payload.
type RansSink struct {
	groups []group
}

// NewRansSink creates an empty rANS bit sink.
func NewRansSink() *RansSink {
	return &RansSink{}
}

// PushGroup appends a k-bit group (k in [1,64]) to the sink. Called once
// per renormalization step in encode order.
func (s *RansSink) PushGroup(value uint64, k uint) {
	s.groups = append(s.groups, group{value: value, width: uint8(k)})
}

// Len returns the number of groups pushed so far.
func (s *RansSink) Len() int {
	return len(s.groups)
}

// Finalize packs every pushed group into a byte slice, writing the most
// recently pushed group first. The result is the codec payload for the
// rANS lane(s) that fed this sink.
func (s *RansSink) Finalize() ([]byte, error) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)

	for i := len(s.groups) - 1; i >= 0; i-- {
		g := s.groups[i]

		if err := bw.WriteBits(g.value, g.width); err != nil {
			return nil, errors.Wrap(err, "bitstream: write rANS group")
		}
	}

	if err := bw.Close(); err != nil {
		return nil, errors.Wrap(err, "bitstream: close rANS sink")
	}

	return buf.Bytes(), nil
}

// RansSource pops k-bit groups from a payload produced by RansSink.Finalize,
// in decode order (i.e. reverse of the original encoder's push order).
type RansSource struct {
	br *bitio.Reader
}

// NewRansSource wraps payload for sequential group reads.
func NewRansSource(payload []byte) *RansSource {
	return &RansSource{br: bitio.NewReader(bytes.NewReader(payload))}
}

// PopGroup reads the next k-bit group (decode order).
func (s *RansSource) PopGroup(k uint) (uint64, error) {
	v, err := s.br.ReadBits(uint8(k))

	if err != nil {
		return 0, errors.Wrap(err, "bitstream: truncated rANS payload")
	}

	return v, nil
}
