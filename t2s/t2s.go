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

// Package t2s rewrites traditional Chinese code points to their
// simplified counterparts using a binary mapping table.
package t2s

import (
	"encoding/binary"
	"fmt"
	"io"
)

// T2S holds the traditional-to-simplified mapping. Code points
// missing from the table pass through unchanged.
type T2S struct {
	table map[rune]rune
}

// Load reads a table of N traditional followed by N simplified code
// points, each stored as a little-endian 32-bit value.
func Load(r io.Reader) (*T2S, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load t2s table: %w", err)
	}
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("failed to load t2s table: unexpected file size %d", len(data))
	}
	count := len(data) / 8
	table := make(map[rune]rune, count)
	for i := 0; i < count; i++ {
		tra := rune(binary.LittleEndian.Uint32(data[i*4:]))
		sim := rune(binary.LittleEndian.Uint32(data[(count+i)*4:]))
		table[tra] = sim
	}
	return &T2S{table: table}, nil
}

// Rewrite maps every code point through the table, preserving the
// sequence length.
func (t *T2S) Rewrite(sentence []rune) []rune {
	out := make([]rune, len(sentence))
	for i, ch := range sentence {
		if sim, ok := t.table[ch]; ok {
			out[i] = sim
		} else {
			out[i] = ch
		}
	}
	return out
}

// Size returns the number of mapped code points.
func (t *T2S) Size() int {
	return len(t.table)
}
