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
	"strings"

	"github.com/czcorpus/zhseg/dat"
)

// PostProcessor merges runs of adjacent segments whose concatenated
// text forms an entry of its dictionary, replacing them with a single
// segment carrying the processor's tag. Dictionary keys end with a
// "\x00" terminator; an interior trie node alone does not accept.
type PostProcessor struct {
	dict *dat.Dat
	tag  string
}

// NewPostProcessor wraps a dictionary trie and the tag assigned to
// merged segments.
func NewPostProcessor(dict *dat.Dat, tag string) *PostProcessor {
	return &PostProcessor{dict: dict, tag: tag}
}

// Tag returns the tag assigned to merged segments.
func (p *PostProcessor) Tag() string {
	return p.tag
}

// Adjust performs a greedy longest-match merge pass, left to right.
// Whitespace segments (empty text) never take part in a merge and
// stop any match in progress.
func (p *PostProcessor) Adjust(words []Segment) []Segment {
	result := make([]Segment, 0, len(words))
	i := 0
	for i < len(words) {
		w := words[i]
		if w.Text == "" {
			result = append(result, w)
			i++
			continue
		}
		pointer := p.dict.Descendant(p.dict.Root(), w.Text)
		if pointer == dat.None {
			result = append(result, w)
			i++
			continue
		}
		best := -1
		if p.dict.Child(pointer, 0) != dat.None {
			best = i
		}
		for j := i + 1; j < len(words); j++ {
			if words[j].Text == "" {
				break
			}
			pointer = p.dict.Descendant(pointer, words[j].Text)
			if pointer == dat.None {
				break
			}
			if p.dict.Child(pointer, 0) != dat.None {
				best = j
			}
		}
		if best < 0 {
			result = append(result, w)
			i++
			continue
		}
		var text strings.Builder
		for k := i; k <= best; k++ {
			text.WriteString(words[k].Text)
		}
		result = append(result, Segment{
			Start: w.Start,
			End:   words[best].End,
			Text:  text.String(),
			Tag:   p.tag,
		})
		i = best + 1
	}
	return result
}
