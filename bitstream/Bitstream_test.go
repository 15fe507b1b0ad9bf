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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRansStackLifoOrder(t *testing.T) {
	sink := NewRansSink()
	pushed := []uint64{0x12, 0x34, 0x56, 0x78}

	for _, v := range pushed {
		sink.PushGroup(v, 8)
	}

	payload, err := sink.Finalize()
	require.NoError(t, err)

	src := NewRansSource(payload)

	for i := len(pushed) - 1; i >= 0; i-- {
		got, err := src.PopGroup(8)
		require.NoError(t, err)
		assert.Equal(t, pushed[i], got, "groups must pop in reverse of push order")
	}
}

func TestRansStackVariableWidth(t *testing.T) {
	sink := NewRansSink()
	sink.PushGroup(0x3, 2)
	sink.PushGroup(0xFF, 8)
	sink.PushGroup(0x1, 1)

	payload, err := sink.Finalize()
	require.NoError(t, err)

	src := NewRansSource(payload)

	v, err := src.PopGroup(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1), v)

	v, err = src.PopGroup(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xFF), v)

	v, err = src.PopGroup(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x3), v)
}

func TestRansStackEmpty(t *testing.T) {
	sink := NewRansSink()
	payload, err := sink.Finalize()
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestBitSinkSourceRoundTrip(t *testing.T) {
	bits := []int{1, 0, 1, 1, 0, 0, 0, 1, 1, 1}
	sink := NewBitSink()

	for _, b := range bits {
		require.NoError(t, sink.AppendBit(b))
	}

	payload, n, err := sink.Finalize()
	require.NoError(t, err)
	assert.Equal(t, len(bits), n)

	src := NewBitSource(payload, n)
	for _, want := range bits {
		assert.True(t, src.HasMore())
		got, err := src.ReadBit()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.False(t, src.HasMore())
}

func TestBitSourceTruncated(t *testing.T) {
	src := NewBitSource(nil, 0)
	assert.False(t, src.HasMore())
	_, err := src.ReadBit()
	assert.Error(t, err)
}
