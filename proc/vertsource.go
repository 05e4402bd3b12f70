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

package proc

import (
	"strings"

	"github.com/tomachalek/vertigo/v5"
)

// VertSource implements vertigo.LineProcessor. It concatenates the
// word column of all tokens within one atom structure back into a
// single line and hands each completed line to the flush callback,
// which lets an existing tokenization be re-segmented. Joining uses
// no separator which matches CJK verticals.
type VertSource struct {
	atomStruct string
	flush      func(line string) error

	inAtom bool
	tokens []string
	err    error
}

// NewVertSource creates a source flushing one line per atomStruct
// occurrence.
func NewVertSource(atomStruct string, flush func(line string) error) *VertSource {
	return &VertSource{
		atomStruct: atomStruct,
		flush:      flush,
	}
}

// Err returns the first callback error; vertigo keeps its own
// parsing errors.
func (vs *VertSource) Err() error {
	return vs.err
}

// ProcToken is a part of the vertigo.LineProcessor implementation.
// It collects the word column of tokens inside the current atom.
func (vs *VertSource) ProcToken(tk *vertigo.Token, line int, err error) error {
	if err != nil {
		return err
	}
	if vs.inAtom {
		vs.tokens = append(vs.tokens, tk.Word)
	}
	return nil
}

// ProcStruct is a part of the vertigo.LineProcessor implementation.
func (vs *VertSource) ProcStruct(st *vertigo.Structure, line int, err error) error {
	if err != nil {
		return err
	}
	if st.Name == vs.atomStruct {
		vs.inAtom = true
		vs.tokens = vs.tokens[:0]
	}
	return nil
}

// ProcStructClose is a part of the vertigo.LineProcessor
// implementation. Closing the atom structure flushes the collected
// line.
func (vs *VertSource) ProcStructClose(st *vertigo.StructureClose, line int, err error) error {
	if err != nil {
		return err
	}
	if st.Name != vs.atomStruct || !vs.inAtom {
		return nil
	}
	vs.inAtom = false
	if len(vs.tokens) == 0 {
		return nil
	}
	if err := vs.flush(strings.Join(vs.tokens, "")); err != nil {
		vs.err = err
		return err
	}
	return nil
}
