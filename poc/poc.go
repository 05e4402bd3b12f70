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

// Package poc classifies input characters and derives the
// position-of-character constraints consumed by the decoder.
package poc

import (
	"strings"
	"unicode"

	"github.com/czcorpus/cnc-gokit/collections"
)

// Poc is a bit mask over the four positions a character may take
// within a word: Begin, Middle, End, Single.
type Poc uint8

const (
	B Poc = 1 << iota
	M
	E
	S

	BS  = B | S
	ES  = E | S
	Any = B | M | E | S
)

var singlePuncRunes = []rune{
	'，', '。', '？', '！', '：', '；', '‘', '’', '“', '”', '【', '】', '、', '《', '》',
	'（', '）', ',', '.', '?', '!', ';', ':', '\'', '"', '(', ')',
}

var multiPuncRunes = []rune{
	'·', '@', '|', '#', '￥', '%', '…', '&', '*', '—', '-', '+', '=', '<', '>', '/', '{', '}',
	'[', ']', '\\', '$', '^', '_', '`', '~',
}

var (
	singlePunc = collections.NewSet(singlePuncRunes...)
	multiPunc  = collections.NewSet(multiPuncRunes...)
)

// IsSinglePunc tests membership in the single-punctuation table
// (characters which always form a one-character segment).
func IsSinglePunc(ch rune) bool {
	return singlePunc.Contains(ch)
}

// IsMultiPunc tests membership in the multi-punctuation table
// (characters which may chain into a longer non-CJK segment).
func IsMultiPunc(ch rune) bool {
	return multiPunc.Contains(ch)
}

// TablesDisjoint verifies the invariant that no character belongs to
// both punctuation tables.
func TablesDisjoint() bool {
	for _, ch := range multiPuncRunes {
		if singlePunc.Contains(ch) {
			return false
		}
	}
	return true
}

// CharKind is the preprocessor's character class.
type CharKind int

const (
	KindSpace CharKind = iota
	KindSinglePunc
	KindMultiPunc
	KindOthers
)

// KindOf classifies a single character. ASCII letters and digits
// count as multi-punc; CJK characters fall into KindOthers.
func KindOf(ch rune) CharKind {
	switch {
	case unicode.IsSpace(ch):
		return KindSpace
	case singlePunc.Contains(ch):
		return KindSinglePunc
	case ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9',
		multiPunc.Contains(ch):
		return KindMultiPunc
	default:
		return KindOthers
	}
}

// Build walks the sentence and produces the cleaned input string
// (whitespace dropped) together with one Poc mask per retained
// character. Every produced mask is one of B, M, E, S, BS, ES, Any.
func Build(sentence []rune) (string, []Poc) {
	var input strings.Builder
	pocs := make([]Poc, 0, len(sentence))
	prev := KindSpace
	maskLast := func(m Poc) {
		if len(pocs) > 0 {
			pocs[len(pocs)-1] &= m
		}
	}
	for _, ch := range sentence {
		curr := KindOf(ch)
		switch {
		case prev == KindMultiPunc && curr == KindMultiPunc:
			maskLast(B | M)
			pocs = append(pocs, M|E)
			input.WriteRune(ch)
		case prev == KindOthers && curr == KindOthers:
			pocs = append(pocs, Any)
			input.WriteRune(ch)
		default:
			maskLast(ES)
			switch curr {
			case KindSpace:
			case KindSinglePunc:
				pocs = append(pocs, S)
				input.WriteRune(ch)
			default:
				pocs = append(pocs, BS)
				input.WriteRune(ch)
			}
		}
		prev = curr
	}
	maskLast(ES)
	return input.String(), pocs
}
