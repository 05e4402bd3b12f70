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

// Package modders provides small token normalization functions
// applied to segment text before frequency counting.
package modders

import (
	"fmt"
	"strings"
)

type Modder interface {
	Transform(s string) string
}

type Identity struct{}

func (m Identity) Transform(s string) string {
	return s
}

type ToLower struct{}

func (m ToLower) Transform(s string) string {
	return strings.ToLower(s)
}

type FirstChar struct{}

func (m FirstChar) Transform(s string) string {
	rs := []rune(s)
	if len(rs) == 0 {
		return s
	}
	return string(rs[:1])
}

// ModderFactory maps a configuration name to a Modder.
func ModderFactory(name string) (Modder, error) {
	switch name {
	case "", "identity":
		return Identity{}, nil
	case "toLower":
		return ToLower{}, nil
	case "firstChar":
		return FirstChar{}, nil
	default:
		return nil, fmt.Errorf("unknown token modder %q", name)
	}
}
