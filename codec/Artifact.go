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

package codec

import (
	"bytes"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/flanglet/entro"
	"github.com/flanglet/entro/entropy"
	"github.com/flanglet/entro/model"
)

// ErrCorruptArtifact is returned when a header's fields are missing,
// out of range, or internally inconsistent (e.g. sum(Freq) != M, or
// len(Alphabet) != len(Freq)).
var ErrCorruptArtifact = errors.New("codec: corrupt artifact header")

// Artifact is the self-describing unit Encode produces and Decode
// consumes: a header carrying everything needed to reconstruct the
// model and state the payload was coded against, plus the payload bits
// themselves.
type Artifact struct {
	Algorithm Algorithm
	Length    int

	Alphabet entro.Alphabet
	Freq     entro.Freq
	Cum      entro.Cum
	M        int

	K uint
	B uint64
	L uint64

	// State is the final rANS state; set only for RANS.
	State uint64
	// States holds the final per-lane rANS states; set only for MultiLaneRANS.
	States []uint64
	// NumLanes and Rem describe the lane layout; set only for MultiLaneRANS.
	NumLanes int
	Rem      int

	// BitCount is the exact number of meaningful bits in Payload; set
	// only for AC, whose payload's tail byte may be zero-padded.
	BitCount int

	Payload []byte

	// RunID correlates an Artifact with the log lines its encode/decode
	// emitted - it has no bearing on decode correctness.
	RunID uuid.UUID
}

func (a *Artifact) params() entropy.Params {
	return entropy.Params{K: a.K, B: a.B, L: a.L, M: a.M}
}

func (a *Artifact) model() entro.Model {
	return entro.Model{Alphabet: a.Alphabet, Freq: a.Freq, Cum: a.Cum, M: a.M}
}

// validate checks the header invariants every Artifact must satisfy
// regardless of algorithm, returning ErrCorruptArtifact wrapped with
// detail on the first violation found.
func (a *Artifact) validate() error {
	if len(a.Alphabet) != len(a.Freq) || len(a.Freq) != len(a.Cum) {
		return errors.Wrapf(ErrCorruptArtifact, "alphabet/freq/cum length mismatch: %d/%d/%d",
			len(a.Alphabet), len(a.Freq), len(a.Cum))
	}

	sum := 0
	cum := 0

	for i, f := range a.Freq {
		if f <= 0 {
			return errors.Wrapf(ErrCorruptArtifact, "non-positive frequency at index %d", i)
		}

		if a.Cum[i] != cum {
			return errors.Wrapf(ErrCorruptArtifact, "cumulative table inconsistent at index %d", i)
		}

		cum += f
		sum += f
	}

	if len(a.Freq) > 0 && sum != a.M {
		return errors.Wrapf(ErrCorruptArtifact, "sum(freq)=%d != M=%d", sum, a.M)
	}

	if a.Algorithm == MultiLaneRANS && len(a.States) != a.NumLanes {
		return errors.Wrapf(ErrCorruptArtifact, "len(states)=%d != num_lanes=%d", len(a.States), a.NumLanes)
	}

	return nil
}

// MarshalBinary renders the Artifact header followed by its payload into
// a single byte-oriented blob.
func (a *Artifact) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(byte(a.Algorithm))

	if err := model.WriteVarInt(&buf, uint32(a.Length)); err != nil {
		return nil, err
	}

	if err := model.EncodeAlphabet(&buf, a.Alphabet); err != nil {
		return nil, err
	}

	if err := model.EncodeFreq(&buf, a.Freq); err != nil {
		return nil, err
	}

	if err := model.WriteVarInt(&buf, uint32(a.M)); err != nil {
		return nil, err
	}

	if err := model.WriteVarInt(&buf, uint32(a.K)); err != nil {
		return nil, err
	}

	if err := model.WriteVarInt64(&buf, a.B); err != nil {
		return nil, err
	}

	if err := model.WriteVarInt64(&buf, a.L); err != nil {
		return nil, err
	}

	switch a.Algorithm {
	case AC:
		if err := model.WriteVarInt(&buf, uint32(a.BitCount)); err != nil {
			return nil, err
		}

	case RANS:
		if err := model.WriteVarInt64(&buf, a.State); err != nil {
			return nil, err
		}

	case MultiLaneRANS:
		if err := model.WriteVarInt(&buf, uint32(a.NumLanes)); err != nil {
			return nil, err
		}

		if err := model.WriteVarInt(&buf, uint32(a.Rem)); err != nil {
			return nil, err
		}

		for _, s := range a.States {
			if err := model.WriteVarInt64(&buf, s); err != nil {
				return nil, err
			}
		}

	default:
		return nil, errors.Errorf("codec: marshal unknown algorithm %d", a.Algorithm)
	}

	if err := model.WriteVarInt(&buf, uint32(len(a.Payload))); err != nil {
		return nil, err
	}

	buf.Write(a.Payload)

	return buf.Bytes(), nil
}

// UnmarshalBinary parses a blob written by MarshalBinary back into a.
func (a *Artifact) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	algByte, err := r.ReadByte()

	if err != nil {
		return errors.Wrap(ErrCorruptArtifact, "missing algorithm byte")
	}

	a.Algorithm = Algorithm(algByte)

	length, err := model.ReadVarInt(r)

	if err != nil {
		return errors.Wrap(err, "codec: read length")
	}

	a.Length = int(length)

	alphabet, err := model.DecodeAlphabet(r)

	if err != nil {
		return errors.Wrap(err, "codec: read alphabet")
	}

	a.Alphabet = alphabet

	freq, cum, err := model.DecodeFreq(r, len(alphabet))

	if err != nil {
		return errors.Wrap(err, "codec: read frequencies")
	}

	a.Freq = freq
	a.Cum = cum

	m, err := model.ReadVarInt(r)

	if err != nil {
		return errors.Wrap(err, "codec: read M")
	}

	a.M = int(m)

	k, err := model.ReadVarInt(r)

	if err != nil {
		return errors.Wrap(err, "codec: read k")
	}

	a.K = uint(k)

	b, err := model.ReadVarInt64(r)

	if err != nil {
		return errors.Wrap(err, "codec: read b")
	}

	a.B = b

	l, err := model.ReadVarInt64(r)

	if err != nil {
		return errors.Wrap(err, "codec: read L")
	}

	a.L = l

	switch a.Algorithm {
	case AC:
		bc, err := model.ReadVarInt(r)

		if err != nil {
			return errors.Wrap(err, "codec: read bit count")
		}

		a.BitCount = int(bc)

	case RANS:
		state, err := model.ReadVarInt64(r)

		if err != nil {
			return errors.Wrap(err, "codec: read state")
		}

		a.State = state

	case MultiLaneRANS:
		numLanes, err := model.ReadVarInt(r)

		if err != nil {
			return errors.Wrap(err, "codec: read num_lanes")
		}

		a.NumLanes = int(numLanes)

		rem, err := model.ReadVarInt(r)

		if err != nil {
			return errors.Wrap(err, "codec: read rem")
		}

		a.Rem = int(rem)

		states := make([]uint64, a.NumLanes)

		for i := range states {
			s, err := model.ReadVarInt64(r)

			if err != nil {
				return errors.Wrap(err, "codec: read lane state")
			}

			states[i] = s
		}

		a.States = states

	default:
		return errors.Wrapf(ErrCorruptArtifact, "unknown algorithm id %d", algByte)
	}

	payloadLen, err := model.ReadVarInt(r)

	if err != nil {
		return errors.Wrap(err, "codec: read payload length")
	}

	payload := make([]byte, payloadLen)

	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return errors.Wrap(err, "codec: read payload")
		}
	}

	a.Payload = payload

	return a.validate()
}
