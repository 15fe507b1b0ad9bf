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

// FastLookup replaces Model.Lookup's linear scan over Cum with a direct
// slot->index table, the way an ANS range decoder typically builds a
// freq-to-symbol array once per model instead of scanning a cumulative
// table on every decoded symbol. Building the table costs O(M); each
// lookup after that is O(1).
type FastLookup struct {
	slotToIndex []int
}

// NewFastLookup builds the slot->index table for a model with
// denominator m and matching (freq, cum) tables.
func NewFastLookup(freq []int, cum []int, m int) *FastLookup {
	table := make([]int, m)

	for i, c := range cum {
		for s := c; s < c+freq[i]; s++ {
			table[s] = i
		}
	}

	return &FastLookup{slotToIndex: table}
}

// Lookup returns the symbol index owning slot, or -1 if slot is outside
// [0, m).
func (f *FastLookup) Lookup(slot int) int {
	if slot < 0 || slot >= len(f.slotToIndex) {
		return -1
	}

	return f.slotToIndex[slot]
}
