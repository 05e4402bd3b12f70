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

// Package zhseg implements a Chinese lexical analyzer: given a line
// of text it produces a sequence of tagged segments. The heavy
// lifting happens in the subpackages (dat, poc, label, model); this
// package wires them together and applies dictionary post-processing.
package zhseg

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/czcorpus/zhseg/dat"
	"github.com/czcorpus/zhseg/label"
	"github.com/czcorpus/zhseg/model"
	"github.com/czcorpus/zhseg/poc"
	"github.com/czcorpus/zhseg/t2s"

	"github.com/rs/zerolog/log"
)

// Segmenter bundles the loaded analyzer state. It is immutable after
// Load (aside from AddPostProcessor during setup) and safe for
// concurrent use; per-line buffers are allocated per Cut call.
type Segmenter struct {
	label *label.Label
	model *model.Model
	dict  *dat.Dat
	t2s   *t2s.T2S // nil when the mapping table is not installed
	posts []*PostProcessor
}

// Preprocess is the per-line intermediate state handed to Cut.
type Preprocess struct {
	raw   string
	input string
	pocs  []poc.Poc
}

// Input returns the cleaned input string.
func (p *Preprocess) Input() string {
	return p.input
}

// Pocs returns one position mask per cleaned input character.
func (p *Preprocess) Pocs() []poc.Poc {
	return p.pocs
}

func loadOptional(path string, loadFn func(f *os.File) error) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return loadFn(f)
}

// Load reads an analyzer model directory: label.txt, model.bin and
// dat.bin are required; t2s.bin and the post dictionaries ns.bin and
// idiom.bin are optional and simply absent when missing.
func Load(path string) (*Segmenter, error) {
	s := &Segmenter{}

	f, err := os.Open(filepath.Join(path, "label.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer: %w", err)
	}
	s.label, err = label.Load(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	f, err = os.Open(filepath.Join(path, "model.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer: %w", err)
	}
	s.model, err = model.Load(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	f, err = os.Open(filepath.Join(path, "dat.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to load analyzer: %w", err)
	}
	s.dict, err = dat.Load(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	err = loadOptional(filepath.Join(path, "t2s.bin"), func(f *os.File) error {
		tbl, err := t2s.Load(f)
		if err != nil {
			return err
		}
		s.t2s = tbl
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, item := range []struct {
		file string
		tag  string
	}{{"ns.bin", "ns"}, {"idiom.bin", "i"}} {
		tag := item.tag
		err = loadOptional(filepath.Join(path, item.file), func(f *os.File) error {
			d, err := dat.Load(f)
			if err != nil {
				return err
			}
			s.posts = append(s.posts, NewPostProcessor(d, tag))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	log.Info().
		Str("path", path).
		Int("labels", s.label.Size()).
		Int("datSize", s.dict.Size()).
		Bool("t2s", s.t2s != nil).
		Int("postDicts", len(s.posts)).
		Msg("loaded analyzer model")
	return s, nil
}

// New creates a Segmenter from already loaded components; t2sTable
// may be nil.
func New(lab *label.Label, mod *model.Model, dict *dat.Dat, t2sTable *t2s.T2S) *Segmenter {
	return &Segmenter{label: lab, model: mod, dict: dict, t2s: t2sTable}
}

// AddPostProcessor appends a dictionary merge pass; passes run in
// registration order after each Cut.
func (s *Segmenter) AddPostProcessor(post *PostProcessor) {
	s.posts = append(s.posts, post)
}

// Preprocess cleans the raw line (optional traditional-to-simplified
// rewrite, whitespace removal) and derives the position constraints.
func (s *Segmenter) Preprocess(raw string) *Preprocess {
	rs := []rune(raw)
	if s.t2s != nil {
		rs = s.t2s.Rewrite(rs)
	}
	input, pocs := poc.Build(rs)
	return &Preprocess{raw: raw, input: input, pocs: pocs}
}

// Cut scores and decodes one preprocessed line and rebuilds segments
// against the raw text, so that the emitted byte ranges cover the
// raw line exactly, whitespace included.
func (s *Segmenter) Cut(pre *Preprocess) ([]Segment, error) {
	scores := s.model.InitScores(s.dict, pre.input)
	path, err := s.model.Decode(scores, pre.pocs, s.label)
	if err != nil {
		return nil, err
	}
	raw := pre.raw
	input := pre.input
	words := make([]Segment, 0, len(path))
	var rawIdx, inputIdx, lastRaw, lastInput int
	for _, li := range path {
		p, desc := s.label.Label(li)
		ch, size := utf8.DecodeRuneInString(raw[rawIdx:])
		rawIdx += size
		if unicode.IsSpace(ch) {
			// consume the whole whitespace run; the labeled position
			// belongs to the first character after it
			for {
				next, nextSize := utf8.DecodeRuneInString(raw[rawIdx:])
				rawIdx += nextSize
				if !unicode.IsSpace(next) {
					words = append(words, Segment{Start: lastRaw, End: rawIdx - nextSize, Tag: "w"})
					lastRaw = rawIdx - nextSize
					break
				}
			}
		}
		_, size = utf8.DecodeRuneInString(input[inputIdx:])
		inputIdx += size
		if p == poc.E || p == poc.S {
			words = append(words, Segment{
				Start: lastRaw,
				End:   rawIdx,
				Text:  input[lastInput:inputIdx],
				Tag:   desc,
			})
			lastRaw = rawIdx
			lastInput = inputIdx
		}
	}
	if rawIdx != len(raw) {
		words = append(words, Segment{Start: rawIdx, End: len(raw), Tag: "w"})
	}
	for _, post := range s.posts {
		words = post.Adjust(words)
	}
	return words, nil
}
