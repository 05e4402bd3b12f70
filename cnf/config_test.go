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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleConf = `{
  "corpus": "zh_web_1",
  "sourceType": "plain",
  "sourceFiles": ["/data/zh/a.txt", "/data/zh/b.txt"],
  "modelPath": "/opt/zhseg/models",
  "userDicts": ["/opt/zhseg/user.txt"],
  "puncAsWhitespace": true,
  "tokenMods": ["toLower"],
  "calcARF": true,
  "db": {"type": "sqlite", "name": "/tmp/freqs.db"}
}`

func TestLoadConf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	assert.NoError(t, os.WriteFile(path, []byte(sampleConf), 0o644))
	conf, err := LoadConf(path)
	assert.NoError(t, err)
	assert.Equal(t, "zh_web_1", conf.Corpus)
	assert.Equal(t, "plain", conf.SourceType)
	assert.Equal(t, []string{"/data/zh/a.txt", "/data/zh/b.txt"}, conf.SourceFiles)
	assert.True(t, conf.PuncAsWhitespace)
	assert.True(t, conf.CalcARF)
	assert.Equal(t, "sqlite", conf.DB.Type)
	assert.NoError(t, conf.Validate())
}

func TestLoadConfMissingFile(t *testing.T) {
	_, err := LoadConf(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	conf := &ExtractConf{}
	assert.Error(t, conf.Validate())
	conf.Corpus = "c1"
	conf.SourceType = "plain"
	conf.SourceFiles = []string{"x.txt"}
	conf.ModelPath = "/m"
	assert.NoError(t, conf.Validate())
	conf.SourceType = "vertical"
	assert.Error(t, conf.Validate())
	conf.Vertical.AtomStructure = "s"
	assert.NoError(t, conf.Validate())
}

func TestDumpTemplate(t *testing.T) {
	tpl, err := DumpTemplate()
	assert.NoError(t, err)
	assert.Contains(t, tpl, "\"sourceType\"")
	assert.Contains(t, tpl, "\"modelPath\"")
}
