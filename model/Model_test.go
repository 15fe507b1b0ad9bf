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
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildModelSingleton(t *testing.T) {
	m, err := BuildModel([]byte{'a'}, 4096)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a'}, []byte(m.Alphabet))
	assert.Equal(t, []int{4096}, []int(m.Freq))
	assert.Equal(t, []int{0}, []int(m.Cum))
}

func TestBuildModelEmpty(t *testing.T) {
	m, err := BuildModel(nil, 4096)
	require.NoError(t, err)
	assert.Empty(t, m.Alphabet)
	assert.Empty(t, m.Freq)
}

func TestBuildModelSumsToM(t *testing.T) {
	cases := [][]byte{
		[]byte("hello, rans! hello, rans! hello, rans!"),
		bytes.Repeat([]byte("abcde"), 500),
		[]byte(repeatRange(256, 10)),
	}

	for _, data := range cases {
		m, err := BuildModel(data, 4096)
		require.NoError(t, err)

		sum := 0
		for _, f := range m.Freq {
			assert.GreaterOrEqual(t, f, 1)
			sum += f
		}

		assert.Equal(t, 4096, sum)

		cum := 0
		for i, c := range m.Cum {
			assert.Equal(t, cum, c)
			cum += m.Freq[i]
		}
	}
}

func TestBuildModelAlphabetTooLarge(t *testing.T) {
	data := []byte(repeatRange(256, 1))
	_, err := BuildModel(data, 128)
	assert.ErrorIs(t, err, ErrAlphabetTooLarge)
}

func TestBuildModelDeterministic(t *testing.T) {
	data := make([]byte, 5000)
	r := rand.New(rand.NewSource(42))
	r.Read(data)

	m1, err := BuildModel(data, 4096)
	require.NoError(t, err)
	m2, err := BuildModel(data, 4096)
	require.NoError(t, err)

	assert.Equal(t, m1.Freq, m2.Freq)
	assert.Equal(t, m1.Cum, m2.Cum)
}

func TestAlphabetRoundTrip(t *testing.T) {
	m, err := BuildModel([]byte(repeatRange(256, 3)), 4096)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeAlphabet(&buf, m.Alphabet))
	require.NoError(t, EncodeFreq(&buf, m.Freq))

	got, err := DecodeAlphabet(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Alphabet, got)

	f, c, err := DecodeFreq(&buf, len(got))
	require.NoError(t, err)
	assert.Equal(t, m.Freq, f)
	assert.Equal(t, m.Cum, c)
}

func repeatRange(n, times int) string {
	b := make([]byte, 0, n*times)
	for t := 0; t < times; t++ {
		for i := 0; i < n; i++ {
			b = append(b, byte(i))
		}
	}
	return string(b)
}
