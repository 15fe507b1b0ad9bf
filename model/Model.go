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

// Package model builds the static frequency table a rANS codec
// quantizes an empirical byte distribution onto, and carries the
// header-level (de)serialization of the alphabet/frequency pair that
// every Artifact needs alongside its payload.
package model

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/flanglet/entro"
	"github.com/flanglet/entro/internal"
)

// ErrAlphabetTooLarge is returned by BuildModel when the input has more
// distinct byte values than the requested denominator can represent.
var ErrAlphabetTooLarge = errors.New("model: alphabet larger than denominator M")

// ErrQuantizationFailed is returned if the adjustment loop cannot reach
// sum(Freq) == M without violating Freq[i] >= 1. This is only possible
// when |A| > M, which BuildModel already rejects, so this error should
// be unreachable in practice; it is kept as a defensive invariant check
// rather than a panic so the façade can surface it as a normal error.
var ErrQuantizationFailed = errors.New("model: frequency adjustment could not reach the target denominator")

// BuildModel implements build_model(data, M): it derives the sorted
// alphabet, the empirical counts, and then quantizes those counts onto
// exactly M slots using an argmax adjustment loop (not a distortion-queue
// rebalance): first allocate each symbol max(1, floor(n_i*M/total)), then
// repeatedly grow the most-understated bucket (largest n_i - F[i]) or
// shrink the largest bucket with F[i] > 1, lowest index first on ties,
// until the allocation sums to exactly M.
func BuildModel(data []byte, m int) (entro.Model, error) {
	var empty entro.Model

	alphabet := distinctSorted(data)

	if len(alphabet) > m {
		return empty, errors.Wrapf(ErrAlphabetTooLarge, "|A|=%d > M=%d", len(alphabet), m)
	}

	if len(alphabet) == 0 {
		return entro.Model{Alphabet: entro.Alphabet{}, Freq: entro.Freq{}, Cum: entro.Cum{}, M: m}, nil
	}

	counts := make([]int, 256)
	internal.ComputeHistogram(data, counts)

	n := make([]int, len(alphabet))
	total := 0

	for i, a := range alphabet {
		n[i] = counts[a]
		total += n[i]
	}

	f := make([]int, len(alphabet))

	for i, ni := range n {
		scaled := int(float64(ni) * float64(m) / float64(total))

		if scaled < 1 {
			scaled = 1
		}

		f[i] = scaled
	}

	sum := sumInts(f)

	// While under M, grow the symbol whose provisional allocation most
	// understates its empirical share; tie-break lowest index.
	for sum < m {
		i := argmax(len(f), func(i int) int { return n[i] - f[i] })
		f[i]++
		sum++
	}

	// While over M, shrink the largest bucket that can still afford it;
	// tie-break lowest index. This cannot exhaust all buckets when
	// |A| <= M, since that leaves at least one F[i] > 1 to spend.
	for sum > m {
		i := argmaxWhere(f, func(i int) bool { return f[i] > 1 })

		if i < 0 {
			return empty, ErrQuantizationFailed
		}

		f[i]--
		sum--
	}

	if sumInts(f) != m {
		return empty, ErrQuantizationFailed
	}

	c := make([]int, len(alphabet))
	cum := 0

	for i, fi := range f {
		c[i] = cum
		cum += fi
	}

	return entro.Model{Alphabet: alphabet, Freq: f, Cum: c, M: m}, nil
}

// distinctSorted returns the sorted distinct bytes present in data.
func distinctSorted(data []byte) entro.Alphabet {
	var seen [256]bool

	for _, b := range data {
		seen[b] = true
	}

	a := make(entro.Alphabet, 0, 256)

	for i := 0; i < 256; i++ {
		if seen[i] {
			a = append(a, byte(i))
		}
	}

	return a
}

func sumInts(v []int) int {
	s := 0

	for _, x := range v {
		s += x
	}

	return s
}

// argmax returns the lowest index i in [0,n) maximizing key(i).
func argmax(n int, key func(int) int) int {
	best := 0
	bestV := key(0)

	for i := 1; i < n; i++ {
		if v := key(i); v > bestV {
			bestV = v
			best = i
		}
	}

	return best
}

// argmaxWhere returns the lowest index of the maximal f[i] among indices
// satisfying pred, or -1 if none satisfy pred.
func argmaxWhere(f []int, pred func(int) bool) int {
	best := -1

	for i, v := range f {
		if !pred(i) {
			continue
		}

		if best < 0 || v > f[best] {
			best = i
		}
	}

	return best
}

// sortByFreq orders symbol indices by decreasing frequency, decreasing
// symbol on ties - for callers that want a deterministic traversal
// order over a model's symbols; nothing in this module calls it, and
// BuildModel itself never needs it.
type sortByFreq struct {
	idx  []int
	freq []int
}

func (s sortByFreq) Len() int      { return len(s.idx) }
func (s sortByFreq) Swap(i, j int) { s.idx[i], s.idx[j] = s.idx[j], s.idx[i] }
func (s sortByFreq) Less(i, j int) bool {
	fi, fj := s.freq[s.idx[i]], s.freq[s.idx[j]]

	if fi == fj {
		return s.idx[i] > s.idx[j]
	}

	return fi > fj
}

// OrderByFreq returns symbol indices sorted by decreasing frequency.
func OrderByFreq(f entro.Freq) []int {
	idx := make([]int, len(f))

	for i := range idx {
		idx[i] = i
	}

	sort.Sort(sortByFreq{idx: idx, freq: f})
	return idx
}
