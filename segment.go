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

import "github.com/czcorpus/zhseg/poc"

// Segment is one analyzer output unit. Start and End are byte
// offsets into the raw line; the segments of a line always cover it
// exactly. Text is the preprocessed (cleaned, possibly simplified)
// form and is empty for whitespace segments. Tag is a label
// description, "w" for whitespace, or a post-processor tag.
type Segment struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Tag   string `json:"tag"`
}

// PuncAdjust rewrites the tag of every single-character
// single-punctuation segment to "w". The slice is modified in place
// and returned for chaining.
func PuncAdjust(words []Segment) []Segment {
	for i, w := range words {
		rs := []rune(w.Text)
		if len(rs) == 1 && poc.IsSinglePunc(rs[0]) {
			words[i].Tag = "w"
		}
	}
	return words
}
