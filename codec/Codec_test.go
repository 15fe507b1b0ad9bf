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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanglet/entro"
	"github.com/flanglet/entro/entropy"
)

type recordingListener struct {
	events []entro.Event
}

func (l *recordingListener) ProcessEvent(evt entro.Event) {
	l.events = append(l.events, evt)
}

func repeatRange(n, times int) []byte {
	b := make([]byte, 0, n*times)
	for t := 0; t < times; t++ {
		for i := 0; i < n; i++ {
			b = append(b, byte(i))
		}
	}
	return b
}

func TestRoundTripAllAlgorithms(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		[]byte("hello, rans! hello, rans! hello, rans!"),
		bytes.Repeat([]byte("abcde"), 50),
		repeatRange(256, 4),
	}

	for _, algo := range []Algorithm{AC, RANS, MultiLaneRANS} {
		for _, data := range cases {
			listener := &recordingListener{}
			art, err := Encode(algo, data, Options{Listener: listener})
			require.NoError(t, err, "algo=%v data=%q", algo, data)

			got, err := Decode(art, Options{})
			require.NoError(t, err, "algo=%v data=%q", algo, data)
			assert.Equal(t, data, got, "algo=%v", algo)
			assert.NotEmpty(t, listener.events)
		}
	}
}

func TestArtifactMarshalRoundTrip(t *testing.T) {
	data := []byte("hello, rans! hello, rans! hello, rans!")

	for _, algo := range []Algorithm{AC, RANS, MultiLaneRANS} {
		art, err := Encode(algo, data, Options{})
		require.NoError(t, err)

		blob, err := art.MarshalBinary()
		require.NoError(t, err)

		var decoded Artifact
		require.NoError(t, decoded.UnmarshalBinary(blob))

		got, err := Decode(&decoded, Options{})
		require.NoError(t, err)
		assert.Equal(t, data, got, "algo=%v", algo)
	}
}

func TestMultiLaneRem(t *testing.T) {
	data := []byte("hello, rans! hello, rans! hello, rans!")
	require.Equal(t, 38, len(data))

	art, err := Encode(MultiLaneRANS, data, Options{})
	require.NoError(t, err)
	assert.Equal(t, 38%entropy.DefaultNumLanes, art.Rem)
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"AC":              AC,
		"rans":            RANS,
		"MULTI_LANE_RANS": MultiLaneRANS,
		"multi-lane-rans": MultiLaneRANS,
	}

	for name, want := range cases {
		got, err := ParseAlgorithm(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseAlgorithm("bogus")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestDecodeCorruptArtifactFreqMismatch(t *testing.T) {
	art := &Artifact{
		Algorithm: RANS,
		Length:    1,
		Alphabet:  entro.Alphabet{'a'},
		Freq:      entro.Freq{3},
		Cum:       entro.Cum{0},
		M:         4096,
	}

	_, err := Decode(art, Options{})
	assert.ErrorIs(t, err, ErrCorruptArtifact)
}

func TestDecodeTruncatedPayload(t *testing.T) {
	data := bytes.Repeat([]byte("abcde"), 50)
	art, err := Encode(RANS, data, Options{})
	require.NoError(t, err)

	art.Payload = art.Payload[:len(art.Payload)/2]

	_, err = Decode(art, Options{})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestEncodeInvalidInput(t *testing.T) {
	_, err := Encode(Algorithm(99), []byte("x"), Options{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEncodeAlphabetLargerThanM(t *testing.T) {
	data := repeatRange(256, 1)
	opts := Options{Params: entropy.DefaultParams()}
	opts.Params.M = 128

	_, err := Encode(RANS, data, opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
