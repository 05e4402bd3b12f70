// Copyright 2022 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2022 Charles University, Faculty of Arts,
//                Institute of the Czech National Corpus
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package zhseg

import (
	"testing"

	"github.com/czcorpus/zhseg/dat"

	"github.com/stretchr/testify/assert"
)

func dictOf(t *testing.T, keys ...string) *dat.Dat {
	pairs := make([]dat.Pair, len(keys))
	for i, k := range keys {
		pairs[i] = dat.Pair{Key: k + "\x00"}
	}
	d, err := dat.Build(pairs)
	assert.NoError(t, err)
	return d
}

func TestAdjustMergesPair(t *testing.T) {
	post := NewPostProcessor(dictOf(t, "AB"), "m")
	words := []Segment{
		{0, 1, "A", "x"},
		{1, 2, "B", "y"},
		{2, 3, "C", "z"},
	}
	assert.Equal(t, []Segment{
		{0, 2, "AB", "m"},
		{2, 3, "C", "z"},
	}, post.Adjust(words))
}

func TestAdjustPrefersLongestMatch(t *testing.T) {
	post := NewPostProcessor(dictOf(t, "AB", "ABC"), "m")
	words := []Segment{
		{0, 1, "A", "x"},
		{1, 2, "B", "x"},
		{2, 3, "C", "x"},
		{3, 4, "D", "x"},
	}
	assert.Equal(t, []Segment{
		{0, 3, "ABC", "m"},
		{3, 4, "D", "x"},
	}, post.Adjust(words))
}

func TestAdjustSingleSegmentEntry(t *testing.T) {
	post := NewPostProcessor(dictOf(t, "A"), "m")
	words := []Segment{
		{0, 1, "A", "x"},
		{1, 2, "B", "y"},
	}
	assert.Equal(t, []Segment{
		{0, 1, "A", "m"},
		{1, 2, "B", "y"},
	}, post.Adjust(words))
}

func TestAdjustWhitespaceStopsMerge(t *testing.T) {
	post := NewPostProcessor(dictOf(t, "AB"), "m")
	words := []Segment{
		{0, 1, "A", "x"},
		{1, 2, "", "w"},
		{2, 3, "B", "y"},
	}
	assert.Equal(t, words, post.Adjust(words))
}

func TestAdjustNoMatchKeepsAll(t *testing.T) {
	post := NewPostProcessor(dictOf(t, "XY"), "m")
	words := []Segment{
		{0, 1, "A", "x"},
		{1, 2, "B", "y"},
	}
	assert.Equal(t, words, post.Adjust(words))
}

func TestAdjustIdempotent(t *testing.T) {
	post := NewPostProcessor(dictOf(t, "AB"), "m")
	words := []Segment{
		{0, 1, "A", "x"},
		{1, 2, "B", "y"},
		{2, 3, "C", "z"},
	}
	once := post.Adjust(words)
	twice := post.Adjust(append([]Segment(nil), once...))
	assert.Equal(t, once, twice)
}
