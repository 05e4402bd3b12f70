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

package t2s

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tableBytes(tra, sim []rune) []byte {
	var buf bytes.Buffer
	for _, ch := range tra {
		binary.Write(&buf, binary.LittleEndian, uint32(ch))
	}
	for _, ch := range sim {
		binary.Write(&buf, binary.LittleEndian, uint32(ch))
	}
	return buf.Bytes()
}

func TestLoadAndRewrite(t *testing.T) {
	data := tableBytes([]rune{'漢', '語', '國'}, []rune{'汉', '语', '国'})
	tbl, err := Load(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 3, tbl.Size())
	out := tbl.Rewrite([]rune("漢語真好，國家"))
	assert.Equal(t, "汉语真好，国家", string(out))
	assert.Equal(t, 7, len(out))
}

func TestLoadRejectsBadSize(t *testing.T) {
	_, err := Load(bytes.NewReader(make([]byte, 10)))
	assert.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	tbl, err := Load(bytes.NewReader(nil))
	assert.NoError(t, err)
	out := tbl.Rewrite([]rune("漢"))
	assert.Equal(t, "漢", string(out))
}
