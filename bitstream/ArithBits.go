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

package bitstream

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// BitSink is a FIFO single-bit sink for the AC core: AppendBit writes
// bits in the order the arithmetic coder narrows its interval, and
// Finalize returns the payload bytes plus the exact bit count (the tail
// byte is padded, so the bit count must travel with the payload).
type BitSink struct {
	buf *bytes.Buffer
	bw  *bitio.Writer
	n   int
}

// NewBitSink creates an empty AC bit sink.
func NewBitSink() *BitSink {
	buf := &bytes.Buffer{}
	return &BitSink{buf: buf, bw: bitio.NewWriter(buf)}
}

// AppendBit writes a single bit (0 or 1).
func (s *BitSink) AppendBit(bit int) error {
	if err := s.bw.WriteBits(uint64(bit&1), 1); err != nil {
		return errors.Wrap(err, "bitstream: append bit")
	}

	s.n++
	return nil
}

// Len returns the number of bits written so far.
func (s *BitSink) Len() int {
	return s.n
}

// Finalize flushes the padding bits and returns (payload, bitCount).
func (s *BitSink) Finalize() ([]byte, int, error) {
	if err := s.bw.Close(); err != nil {
		return nil, 0, errors.Wrap(err, "bitstream: close AC sink")
	}

	return s.buf.Bytes(), s.n, nil
}

// BitSource is a FIFO single-bit source for the AC core, reading bits in
// the order BitSink wrote them.
type BitSource struct {
	br     *bitio.Reader
	remain int
}

// NewBitSource wraps payload for forward, bit-count-bounded reads.
func NewBitSource(payload []byte, bitCount int) *BitSource {
	return &BitSource{br: bitio.NewReader(bytes.NewReader(payload)), remain: bitCount}
}

// HasMore reports whether any bit remains unread.
func (s *BitSource) HasMore() bool {
	return s.remain > 0
}

// ReadBit reads the next bit in order.
func (s *BitSource) ReadBit() (int, error) {
	if s.remain <= 0 {
		return 0, errors.New("bitstream: read past end of AC payload")
	}

	v, err := s.br.ReadBits(1)

	if err != nil {
		return 0, errors.Wrap(err, "bitstream: truncated AC payload")
	}

	s.remain--
	return int(v), nil
}
