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

package model

import (
	"io"

	"github.com/pkg/errors"

	"github.com/flanglet/entro"
)

// WriteVarInt writes value as a base-128 varint, least significant
// group first, to a byte-oriented io.Writer - the Artifact header is a
// byte-oriented structure distinct from the bit-packed codec payload.
func WriteVarInt(w io.Writer, value uint32) error {
	buf := make([]byte, 0, 5)

	for value >= 128 {
		buf = append(buf, byte(0x80|(value&0x7F)))
		value >>= 7
	}

	buf = append(buf, byte(value))
	_, err := w.Write(buf)
	return err
}

// ReadVarInt reads a value written by WriteVarInt.
func ReadVarInt(r io.Reader) (uint32, error) {
	var b [1]byte
	var res uint32
	var shift uint

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, errors.Wrap(err, "model: truncated varint")
		}

		res |= uint32(b[0]&0x7F) << shift

		if b[0] < 128 {
			return res, nil
		}

		shift += 7

		if shift > 28 {
			return 0, errors.New("model: varint too long")
		}
	}
}

// WriteVarInt64 writes value as a base-128 varint, for the wider values
// (rANS states, b and L) a header field can carry.
func WriteVarInt64(w io.Writer, value uint64) error {
	buf := make([]byte, 0, 10)

	for value >= 128 {
		buf = append(buf, byte(0x80|(value&0x7F)))
		value >>= 7
	}

	buf = append(buf, byte(value))
	_, err := w.Write(buf)
	return err
}

// ReadVarInt64 reads a value written by WriteVarInt64.
func ReadVarInt64(r io.Reader) (uint64, error) {
	var b [1]byte
	var res uint64
	var shift uint

	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, errors.Wrap(err, "model: truncated varint64")
		}

		res |= uint64(b[0]&0x7F) << shift

		if b[0] < 128 {
			return res, nil
		}

		shift += 7

		if shift > 63 {
			return 0, errors.New("model: varint64 too long")
		}
	}
}

// EncodeAlphabet writes the alphabet as a length-prefixed byte sequence.
// A literal byte list, rather than a 256-bit presence bitmap, keeps the
// header byte-oriented; it costs the varint length plus one byte per
// symbol, so it is smaller than the 32-byte bitmap only for alphabets
// of up to 30 symbols.
func EncodeAlphabet(w io.Writer, a entro.Alphabet) error {
	if err := WriteVarInt(w, uint32(len(a))); err != nil {
		return err
	}

	if len(a) == 0 {
		return nil
	}

	_, err := w.Write(a)
	return errors.Wrap(err, "model: write alphabet")
}

// DecodeAlphabet reads an alphabet written by EncodeAlphabet.
func DecodeAlphabet(r io.Reader) (entro.Alphabet, error) {
	n, err := ReadVarInt(r)

	if err != nil {
		return nil, errors.Wrap(err, "model: read alphabet length")
	}

	if n > 256 {
		return nil, errors.Errorf("model: invalid alphabet length %d", n)
	}

	if n == 0 {
		return entro.Alphabet{}, nil
	}

	buf := make([]byte, n)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "model: read alphabet bytes")
	}

	return entro.Alphabet(buf), nil
}

// EncodeFreq writes each frequency as a varint, in alphabet order.
func EncodeFreq(w io.Writer, f entro.Freq) error {
	for _, v := range f {
		if v <= 0 {
			return errors.Errorf("model: non-positive frequency %d", v)
		}

		if err := WriteVarInt(w, uint32(v)); err != nil {
			return err
		}
	}

	return nil
}

// DecodeFreq reads n frequencies written by EncodeFreq and derives the
// matching cumulative table: Cum[i] is the running sum of Freq[0:i].
func DecodeFreq(r io.Reader, n int) (entro.Freq, entro.Cum, error) {
	f := make(entro.Freq, n)
	c := make(entro.Cum, n)
	cum := 0

	for i := 0; i < n; i++ {
		v, err := ReadVarInt(r)

		if err != nil {
			return nil, nil, errors.Wrap(err, "model: read frequency")
		}

		if v == 0 {
			return nil, nil, errors.New("model: decoded zero frequency")
		}

		f[i] = int(v)
		c[i] = cum
		cum += int(v)
	}

	return f, c, nil
}
