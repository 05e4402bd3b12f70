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

// Package ptcount accumulates (token, tag) frequency data over a
// segmented corpus.
package ptcount

// TokenDict is a bidirectional token <-> int mapping used to keep
// the counter keys small when collecting large corpora.
type TokenDict struct {
	counter int
	data    map[string]int
	dataRev map[int]string
}

// Add stores a token and returns its numeric representation; known
// tokens just return the existing one.
func (d *TokenDict) Add(token string) int {
	v, ok := d.data[token]
	if ok {
		return v
	}
	d.counter++
	d.data[token] = d.counter
	d.dataRev[d.counter] = token
	return d.counter
}

// Get returns a token based on its numeric representation.
func (d *TokenDict) Get(idx int) string {
	return d.dataRev[idx]
}

func (d *TokenDict) Size() int {
	return len(d.data)
}

func NewTokenDict() *TokenDict {
	return &TokenDict{
		data:    make(map[string]int),
		dataRev: make(map[int]string),
	}
}
