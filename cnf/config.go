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

package cnf

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/czcorpus/zhseg/db"
)

// VerticalConf configures the vertical-file input mode: tokens of
// each atom structure are joined back into a line which is then
// re-segmented.
type VerticalConf struct {
	// AtomStructure is the structure (e.g. "s", "p") whose tokens
	// form one analyzed line
	AtomStructure string `json:"atomStructure"`

	Encoding string `json:"encoding"`
}

// ExtractConf holds the configuration of one frequency extraction
// task.
type ExtractConf struct {
	Corpus string `json:"corpus"`

	// SourceType is either "plain" (one line = one analyzed unit)
	// or "vertical"
	SourceType string `json:"sourceType"`

	// SourceFiles are processed sequentially as one corpus
	SourceFiles []string `json:"sourceFiles"`

	// ModelPath is a directory containing label.txt, model.bin,
	// dat.bin and the optional tables
	ModelPath string `json:"modelPath"`

	// UserDicts are plain-text word lists attached as "uw"
	// post-processors
	UserDicts []string `json:"userDicts,omitempty"`

	// PuncAsWhitespace retags single-punctuation segments to "w"
	PuncAsWhitespace bool `json:"puncAsWhitespace"`

	// TokenMods name normalization steps ("toLower", "firstChar",
	// "identity") applied to segment text before counting
	TokenMods []string `json:"tokenMods,omitempty"`

	// CalcARF enables average reduced frequency calculation; it
	// keeps all token positions in memory during the run
	CalcARF bool `json:"calcARF"`

	Vertical VerticalConf `json:"vertical"`

	DB db.Conf `json:"db"`

	// MaxNumErrors stops the task once exceeded (0 = fail on first)
	MaxNumErrors int `json:"maxNumErrors"`
}

// Validate checks the fields which have no usable zero value.
func (c *ExtractConf) Validate() error {
	if c.Corpus == "" {
		return fmt.Errorf("missing corpus identifier")
	}
	if c.SourceType != "plain" && c.SourceType != "vertical" {
		return fmt.Errorf("unknown source type %q", c.SourceType)
	}
	if c.SourceType == "vertical" && c.Vertical.AtomStructure == "" {
		return fmt.Errorf("vertical source requires atomStructure")
	}
	if c.ModelPath == "" {
		return fmt.Errorf("missing model path")
	}
	if len(c.SourceFiles) == 0 {
		return fmt.Errorf("no source files")
	}
	return nil
}

// LoadConf reads a task configuration from a JSON file.
func LoadConf(confPath string) (*ExtractConf, error) {
	rawData, err := os.ReadFile(confPath)
	if err != nil {
		return nil, err
	}
	var conf ExtractConf
	if err := sonic.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", confPath, err)
	}
	return &conf, nil
}

// DumpTemplate serializes a half-empty sample configuration.
func DumpTemplate() (string, error) {
	conf := ExtractConf{
		SourceType: "plain",
		Corpus:     "corpus_name",
		ModelPath:  "/path/to/model",
		Vertical:   VerticalConf{AtomStructure: "s", Encoding: "UTF-8"},
		DB:         db.Conf{Type: "sqlite", Name: "freqs.db"},
	}
	ans, err := sonic.MarshalIndent(conf, "", "  ")
	if err != nil {
		return "", err
	}
	return string(ans), nil
}
