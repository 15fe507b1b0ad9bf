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

// Package internal holds small numeric helpers that are not part of the
// public API surface; package model uses its histogram routine.
package internal

// ComputeHistogram computes the order-0 byte histogram of block and
// accumulates it into freqs (len(freqs) must be >= 256). Unrolled by 16
// since this runs once per BuildModel call over the full input buffer.
func ComputeHistogram(block []byte, freqs []int) {
	end16 := len(block) &^ 15

	for i := 0; i < end16; i += 16 {
		d := block[i : i+16]
		freqs[d[0]]++
		freqs[d[1]]++
		freqs[d[2]]++
		freqs[d[3]]++
		freqs[d[4]]++
		freqs[d[5]]++
		freqs[d[6]]++
		freqs[d[7]]++
		freqs[d[8]]++
		freqs[d[9]]++
		freqs[d[10]]++
		freqs[d[11]]++
		freqs[d[12]]++
		freqs[d[13]]++
		freqs[d[14]]++
		freqs[d[15]]++
	}

	for i := end16; i < len(block); i++ {
		freqs[block[i]]++
	}
}

// Log2Ceil returns the smallest k such that 1<<k >= v, for v >= 1.
func Log2Ceil(v int) uint {
	k := uint(0)

	for (1 << k) < v {
		k++
	}

	return k
}
