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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanglet/entro/model"
)

func repeatRange(n, times int) []byte {
	b := make([]byte, 0, n*times)
	for t := 0; t < times; t++ {
		for i := 0; i < n; i++ {
			b = append(b, byte(i))
		}
	}
	return b
}

func TestACRoundTripEmpty(t *testing.T) {
	m, err := model.BuildModel(nil, 4096)
	require.NoError(t, err)

	payload, n, err := EncodeAC(nil, m)
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Equal(t, 0, n)

	got, err := DecodeAC(payload, n, m)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)
}

func TestACRoundTripSingleByte(t *testing.T) {
	data := []byte("a")
	m, err := model.BuildModel(data, len(data))
	require.NoError(t, err)

	payload, n, err := EncodeAC(data, m)
	require.NoError(t, err)

	got, err := DecodeAC(payload, n, m)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestACRoundTripVariedInputs(t *testing.T) {
	cases := [][]byte{
		[]byte("hello, rans! hello, rans! hello, rans!"),
		bytes.Repeat([]byte("abcde"), 20),
		repeatRange(256, 2),
	}

	for _, data := range cases {
		m, err := model.BuildModel(data, len(data))
		require.NoError(t, err)

		payload, n, err := EncodeAC(data, m)
		require.NoError(t, err)

		got, err := DecodeAC(payload, n, m)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestRANSRoundTripEmpty(t *testing.T) {
	m, err := model.BuildModel(nil, 4096)
	require.NoError(t, err)
	p := DefaultParams()

	payload, state, err := EncodeRANS(nil, m, p)
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Equal(t, p.L, state)

	got, err := DecodeRANS(payload, 0, state, m, p)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)
}

func TestRANSRoundTripVariedInputs(t *testing.T) {
	cases := [][]byte{
		[]byte("a"),
		[]byte("hello, rans! hello, rans! hello, rans!"),
		bytes.Repeat([]byte("a"), 1000),
		bytes.Repeat([]byte("abcde"), 500),
		repeatRange(256, 10),
	}

	p := DefaultParams()

	for _, data := range cases {
		m, err := model.BuildModel(data, p.M)
		require.NoError(t, err)

		payload, state, err := EncodeRANS(data, m, p)
		require.NoError(t, err)

		got, err := DecodeRANS(payload, len(data), state, m, p)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}

func TestRANSPayloadSizeBound(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 1000)
	p := DefaultParams()
	m, err := model.BuildModel(data, p.M)
	require.NoError(t, err)

	payload, _, err := EncodeRANS(data, m, p)
	require.NoError(t, err)

	// A singleton alphabet carries the whole symbol in the model, so the
	// renormalization payload should stay small relative to the input.
	assert.Less(t, len(payload), len(data))
}

func TestMultiLaneRANSRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("hello, rans! "), 3)
	p := DefaultParams()
	m, err := model.BuildModel(data, p.M)
	require.NoError(t, err)

	numLanes := 4
	payload, states, rem, err := EncodeMultiLaneRANS(data, m, p, numLanes)
	require.NoError(t, err)
	assert.Equal(t, len(data)%numLanes, rem)

	got, err := DecodeMultiLaneRANS(payload, len(data), states, rem, numLanes, m, p)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestMultiLaneRANSRoundTripVariedLaneCounts(t *testing.T) {
	data := repeatRange(256, 10)
	p := DefaultParams()
	m, err := model.BuildModel(data, p.M)
	require.NoError(t, err)

	for _, numLanes := range []int{1, 2, 3, 4, 8} {
		payload, states, rem, err := EncodeMultiLaneRANS(data, m, p, numLanes)
		require.NoError(t, err)

		got, err := DecodeMultiLaneRANS(payload, len(data), states, rem, numLanes, m, p)
		require.NoError(t, err)
		assert.Equal(t, data, got, "numLanes=%d", numLanes)
	}
}

func TestMultiLaneRANSEmpty(t *testing.T) {
	m, err := model.BuildModel(nil, 4096)
	require.NoError(t, err)
	p := DefaultParams()

	payload, states, rem, err := EncodeMultiLaneRANS(nil, m, p, 4)
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Equal(t, 0, rem)

	got, err := DecodeMultiLaneRANS(payload, 0, states, rem, 4, m, p)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)
}

func TestRANSUnknownSymbolFails(t *testing.T) {
	m, err := model.BuildModel([]byte("ab"), 4096)
	require.NoError(t, err)
	p := DefaultParams()

	_, _, err = EncodeRANS([]byte("abc"), m, p)
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)
}

func TestMultiLaneRANSLaneCountMismatch(t *testing.T) {
	m, err := model.BuildModel([]byte("a"), 4096)
	require.NoError(t, err)
	p := DefaultParams()

	_, err = DecodeMultiLaneRANS(nil, 1, []uint64{p.L, p.L}, 0, 3, m, p)
	assert.ErrorIs(t, err, ErrLaneCountMismatch)
}

func TestFastLookupMatchesLinearScan(t *testing.T) {
	data := repeatRange(256, 10)
	m, err := model.BuildModel(data, 4096)
	require.NoError(t, err)

	fl := NewFastLookup(m.Freq, m.Cum, m.M)

	for slot := 0; slot < m.M; slot++ {
		assert.Equal(t, m.Lookup(slot), fl.Lookup(slot))
	}
}

func TestParamsValidate(t *testing.T) {
	p := DefaultParams()
	assert.NoError(t, p.Validate())

	bad := p
	bad.B = p.B + 1
	assert.Error(t, bad.Validate())
}
