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

// Package label loads the decoder's output label table and
// precomputes the legality indexes used by the Viterbi pass.
package label

import (
	"bufio"
	"fmt"
	"io"

	"github.com/czcorpus/zhseg/poc"
)

type labelEntry struct {
	poc  poc.Poc
	desc string
}

// Label is the immutable label table. Besides the labels themselves
// it holds, for every 4-bit POC mask, the indices of labels allowed
// under that mask, and for every label the indices of labels which
// may legally precede it.
type Label struct {
	labels     []labelEntry
	pocToLabel [16][]int
	prevLabels [][]int
}

// Load reads a text table, one label per line, formatted as a
// position digit ('0'=B, '1'=M, '2'=E, '3'=S) followed by the tag.
// Trailing blank lines are ignored.
func Load(r io.Reader) (*Label, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	labels := make([]labelEntry, len(lines))
	for i, line := range lines {
		rs := []rune(line)
		if len(rs) == 0 {
			return nil, fmt.Errorf("empty line %d in labels", i+1)
		}
		var p poc.Poc
		switch rs[0] {
		case '0':
			p = poc.B
		case '1':
			p = poc.M
		case '2':
			p = poc.E
		case '3':
			p = poc.S
		default:
			return nil, fmt.Errorf("unknown poc %q in labels on line %d", rs[0], i+1)
		}
		labels[i] = labelEntry{poc: p, desc: string(rs[1:])}
	}
	lab := &Label{labels: labels}
	for i, item := range labels {
		for mask := 1; mask < 16; mask++ {
			if poc.Poc(mask)&item.poc != 0 {
				lab.pocToLabel[mask] = append(lab.pocToLabel[mask], i)
			}
		}
	}
	lab.prevLabels = make([][]int, len(labels))
	for j, curr := range labels {
		for i, prev := range labels {
			// a word boundary admits any tag change; inside a word
			// the tag must be preserved
			boundary := (prev.poc == poc.E || prev.poc == poc.S) &&
				(curr.poc == poc.B || curr.poc == poc.S)
			inside := prev.desc == curr.desc &&
				(prev.poc == poc.B || prev.poc == poc.M) &&
				(curr.poc == poc.M || curr.poc == poc.E)
			if boundary || inside {
				lab.prevLabels[j] = append(lab.prevLabels[j], i)
			}
		}
	}
	return lab, nil
}

// Size returns the number of labels.
func (l *Label) Size() int {
	return len(l.labels)
}

// Label returns the POC and tag of the label at index.
func (l *Label) Label(index int) (poc.Poc, string) {
	item := l.labels[index]
	return item.poc, item.desc
}

// AllowedLabels returns the indices of labels whose position bit is
// present in the mask. The returned slice must not be modified.
func (l *Label) AllowedLabels(p poc.Poc) []int {
	return l.pocToLabel[p&0xf]
}

// PrevLabels returns the indices of labels which may precede the
// label at index, in ascending order. The returned slice must not
// be modified.
func (l *Label) PrevLabels(index int) []int {
	return l.prevLabels[index]
}
