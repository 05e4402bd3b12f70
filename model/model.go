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

// Package model scores input positions against a feature trie and
// decodes the best label sequence with a constrained Viterbi pass.
package model

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/czcorpus/zhseg/dat"
	"github.com/czcorpus/zhseg/label"
	"github.com/czcorpus/zhseg/poc"
)

const (
	sentenceBoundary = '#'
	featureSeparator = ' '
	featureUniL      = '2'
	featureUniM      = '1'
	featureUniR      = '3'
	featureBiLL      = '3'
	featureBiLM      = '1'
	featureBiMR      = '2'
	featureBiRR      = '4'
)

// back-pointer cell states; non-negative values are label indices
const (
	prevInvalid int32 = -1
	prevStart   int32 = -2
)

// ErrNoPath is returned by Decode when no label sequence satisfies
// the position constraints.
var ErrNoPath = errors.New("no feasible label path")

// Model holds the label transition matrix (L x L) and the
// feature emission matrix (F x L). Both are immutable after Load.
type Model struct {
	numLabels   int
	numFeatures int
	llWeights   []int32
	flWeights   []int32
}

// NormalizeChar shifts the printable ASCII range (33..127) to the
// full-width block the model was trained on; everything else passes
// through.
func NormalizeChar(ch rune) rune {
	if ch > 32 && ch < 128 {
		return ch + 65248
	}
	return ch
}

// Load reads a model file: two little-endian uint32 header values
// (label count L, feature count F) followed by L*L transition and
// F*L emission weights, row-major little-endian int32.
func Load(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	if len(data) < 8 {
		return nil, fmt.Errorf("failed to load model: truncated header")
	}
	numLabels := int(binary.LittleEndian.Uint32(data))
	numFeatures := int(binary.LittleEndian.Uint32(data[4:]))
	expected := 8 + 4*(numLabels*numLabels+numFeatures*numLabels)
	if len(data) != expected {
		return nil, fmt.Errorf(
			"failed to load model: size %d does not match header (L=%d, F=%d)",
			len(data), numLabels, numFeatures)
	}
	body := data[8:]
	llWeights := make([]int32, numLabels*numLabels)
	for i := range llWeights {
		llWeights[i] = int32(binary.LittleEndian.Uint32(body[i*4:]))
	}
	body = body[len(llWeights)*4:]
	flWeights := make([]int32, numFeatures*numLabels)
	for i := range flWeights {
		flWeights[i] = int32(binary.LittleEndian.Uint32(body[i*4:]))
	}
	return &Model{
		numLabels:   numLabels,
		numFeatures: numFeatures,
		llWeights:   llWeights,
		flWeights:   flWeights,
	}, nil
}

// NumLabels returns L.
func (m *Model) NumLabels() int {
	return m.numLabels
}

func (m *Model) addRow(row []int32, d *dat.Dat, node int32) {
	if node == dat.None {
		return
	}
	fr := int(d.Base(node))
	weights := m.flWeights[fr*m.numLabels : (fr+1)*m.numLabels]
	for j := range row {
		row[j] += weights[j]
	}
}

// InitScores produces the T x L emission score matrix (flat,
// row-major) for the cleaned input. It slides a three-character
// window over the normalized text and looks up seven features per
// position, each adding an emission row when present in the feature
// trie. The trie cursors are carried over between positions so that
// each step performs only the lookups involving the newly revealed
// character.
func (m *Model) InitScores(d *dat.Dat, input string) []int32 {
	runes := []rune(input)
	sentenceLen := len(runes)
	stream := make([]rune, 0, sentenceLen+2)
	for _, ch := range runes {
		stream = append(stream, NormalizeChar(ch))
	}
	stream = append(stream, NormalizeChar(sentenceBoundary), NormalizeChar(sentenceBoundary))

	b := rune(sentenceBoundary)
	f := rune(featureSeparator)
	chM := stream[0]
	chR := stream[1]
	baseL := d.Child(d.Root(), b)
	baseM := d.Child(d.Root(), chM)
	baseR := d.Child(d.Root(), chR)
	uniL := d.AndChild(baseL, f)
	uniM := d.AndChild(baseM, f)
	uniR := d.AndChild(baseR, f)
	biLL := d.AndChild(d.AndChild(baseL, b), f)
	biLM := d.AndChild(d.AndChild(baseL, chM), f)
	biMR := d.AndChild(d.AndChild(baseM, chR), f)

	scores := make([]int32, sentenceLen*m.numLabels)
	for i, ch := range stream[2:] {
		row := scores[i*m.numLabels : (i+1)*m.numLabels]
		baseRR := d.Child(d.Root(), ch)
		uniRR := d.AndChild(baseRR, f)
		biRR := d.AndChild(d.AndChild(baseR, ch), f)
		m.addRow(row, d, d.AndChild(uniL, featureUniL))
		m.addRow(row, d, d.AndChild(uniM, featureUniM))
		m.addRow(row, d, d.AndChild(uniR, featureUniR))
		m.addRow(row, d, d.AndChild(biLL, featureBiLL))
		m.addRow(row, d, d.AndChild(biLM, featureBiLM))
		m.addRow(row, d, d.AndChild(biMR, featureBiMR))
		m.addRow(row, d, d.AndChild(biRR, featureBiRR))
		baseR = baseRR
		uniL, uniM, uniR = uniM, uniR, uniRR
		biLL, biLM, biMR = biLM, biMR, biRR
	}
	return scores
}

// Decode runs the constrained Viterbi pass over the score matrix
// produced by InitScores, mutating it in place. pocs constrains the
// labels admissible at each position; transitions must satisfy the
// label table's predecessor index. It returns the label index per
// position, or ErrNoPath when the constraints admit no sequence.
func (m *Model) Decode(scores []int32, pocs []poc.Poc, lab *label.Label) ([]int, error) {
	numLabels := m.numLabels
	if len(scores) != len(pocs)*numLabels {
		panic("scores size does not match poc count")
	}
	if len(pocs) == 0 {
		return []int{}, nil
	}
	prev := make([]int32, len(scores))
	for i := range prev {
		prev[i] = prevInvalid
	}
	for _, j := range lab.AllowedLabels(pocs[0]) {
		prev[j] = prevStart
	}
	for i := 1; i < len(pocs); i++ {
		prevRow := (i - 1) * numLabels
		row := i * numLabels
		for _, j := range lab.AllowedLabels(pocs[i]) {
			best := prevInvalid
			bestScore := int32(math.MinInt32)
			for _, pj := range lab.PrevLabels(j) {
				if prev[prevRow+pj] == prevInvalid {
					continue
				}
				cand := scores[prevRow+pj] + m.llWeights[pj*numLabels+j]
				if best == prevInvalid || cand > bestScore {
					best = int32(pj)
					bestScore = cand
				}
			}
			if best == prevInvalid {
				continue
			}
			scores[row+j] += bestScore
			prev[row+j] = best
		}
	}
	lastRow := (len(pocs) - 1) * numLabels
	last := -1
	for j := 0; j < numLabels; j++ {
		if prev[lastRow+j] == prevInvalid {
			continue
		}
		if last < 0 || scores[lastRow+j] > scores[lastRow+last] {
			last = j
		}
	}
	if last < 0 {
		return nil, ErrNoPath
	}
	path := make([]int, len(pocs))
	path[len(pocs)-1] = last
	for i := len(pocs) - 1; i > 0; i-- {
		last = int(prev[i*numLabels+last])
		path[i-1] = last
	}
	return path, nil
}
