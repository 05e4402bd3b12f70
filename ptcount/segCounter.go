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

package ptcount

import (
	"fmt"
	"math"
)

// SegCount is the accumulated record of one (token, tag) pair.
// When ARF calculation is on it also keeps all corpus positions
// of the pair.
type SegCount struct {
	token     int
	tag       string
	count     int
	positions []int
}

func (c *SegCount) Count() int {
	return c.count
}

// SegCounter counts (token, tag) occurrences over a whole corpus
// run. Tokens are interned through a TokenDict.
type SegCounter struct {
	dict      *TokenDict
	counts    map[string]*SegCount
	withARF   bool
	numTokens int
}

func NewSegCounter(withARF bool) *SegCounter {
	return &SegCounter{
		dict:    NewTokenDict(),
		counts:  make(map[string]*SegCount),
		withARF: withARF,
	}
}

// Add records one occurrence of a token with its tag. Corpus
// positions are assigned in call order.
func (sc *SegCounter) Add(token, tag string) {
	idx := sc.dict.Add(token)
	key := fmt.Sprintf("%d:%s", idx, tag)
	item, ok := sc.counts[key]
	if !ok {
		item = &SegCount{token: idx, tag: tag}
		sc.counts[key] = item
	}
	item.count++
	if sc.withARF {
		item.positions = append(item.positions, sc.numTokens)
	}
	sc.numTokens++
}

// NumTokens returns the corpus size in tokens seen so far.
func (sc *SegCounter) NumTokens() int {
	return sc.numTokens
}

// Size returns the number of distinct (token, tag) pairs.
func (sc *SegCounter) Size() int {
	return len(sc.counts)
}

// arf computes the average reduced frequency from the recorded
// positions, treating the corpus as circular so that the gap
// between the last and the first occurrence also contributes.
func arf(positions []int, numTokens int) float64 {
	if len(positions) == 0 || numTokens == 0 {
		return 0
	}
	avgDist := float64(numTokens) / float64(len(positions))
	var sum float64
	for i := 1; i < len(positions); i++ {
		sum += math.Min(avgDist, float64(positions[i]-positions[i-1]))
	}
	sum += math.Min(avgDist, float64(positions[0]+numTokens-positions[len(positions)-1]))
	return math.Round(sum/avgDist*1000) / 1000.0
}

// ForEach visits all accumulated records. The arf argument is zero
// unless ARF calculation was enabled.
func (sc *SegCounter) ForEach(fn func(token, tag string, count int, arfVal float64)) {
	for _, item := range sc.counts {
		var arfVal float64
		if sc.withARF {
			arfVal = arf(item.positions, sc.numTokens)
		}
		fn(sc.dict.Get(item.token), item.tag, item.count, arfVal)
	}
}
