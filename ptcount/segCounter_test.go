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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenDict(t *testing.T) {
	d := NewTokenDict()
	a := d.Add("你好")
	b := d.Add("世界")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, d.Add("你好"))
	assert.Equal(t, "你好", d.Get(a))
	assert.Equal(t, "世界", d.Get(b))
	assert.Equal(t, 2, d.Size())
}

func TestSegCounterCounts(t *testing.T) {
	sc := NewSegCounter(false)
	sc.Add("你好", "x")
	sc.Add("你好", "x")
	sc.Add("你好", "uw")
	sc.Add("世界", "x")
	assert.Equal(t, 4, sc.NumTokens())
	assert.Equal(t, 3, sc.Size())
	counts := make(map[string]int)
	sc.ForEach(func(token, tag string, count int, arfVal float64) {
		counts[token+"/"+tag] = count
		assert.Zero(t, arfVal)
	})
	assert.Equal(t, map[string]int{
		"你好/x":  2,
		"你好/uw": 1,
		"世界/x":  1,
	}, counts)
}

func TestSegCounterARFUniform(t *testing.T) {
	sc := NewSegCounter(true)
	// a appears every other token: maximally dispersed
	for i := 0; i < 4; i++ {
		sc.Add("a", "x")
		sc.Add("b", "x")
	}
	arfs := make(map[string]float64)
	sc.ForEach(func(token, tag string, count int, arfVal float64) {
		arfs[token] = arfVal
	})
	// uniformly spread occurrences keep ARF equal to the frequency
	assert.InDelta(t, 4.0, arfs["a"], 0.001)
	assert.InDelta(t, 4.0, arfs["b"], 0.001)
}

func TestSegCounterARFClustered(t *testing.T) {
	sc := NewSegCounter(true)
	for i := 0; i < 4; i++ {
		sc.Add("a", "x")
	}
	for i := 0; i < 4; i++ {
		sc.Add("b", "x")
	}
	arfs := make(map[string]float64)
	sc.ForEach(func(token, tag string, count int, arfVal float64) {
		arfs[token] = arfVal
	})
	// clustered occurrences reduce ARF below the raw count
	assert.Less(t, arfs["a"], 4.0)
	assert.Greater(t, arfs["a"], 1.0)
}
