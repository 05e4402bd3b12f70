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

package modders

// ModderChain applies a list of Modders in order.
type ModderChain struct {
	fn []Modder
}

func NewModderChain(fn []Modder) *ModderChain {
	return &ModderChain{fn: fn}
}

// NewModderChainByNames builds a chain from configuration names.
func NewModderChainByNames(names []string) (*ModderChain, error) {
	fn := make([]Modder, len(names))
	for i, name := range names {
		m, err := ModderFactory(name)
		if err != nil {
			return nil, err
		}
		fn[i] = m
	}
	return &ModderChain{fn: fn}, nil
}

func (m *ModderChain) Mod(s string) string {
	for _, mod := range m.fn {
		s = mod.Transform(s)
	}
	return s
}
