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

package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/czcorpus/zhseg/db"

	"github.com/stretchr/testify/assert"
)

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freqs.db")
	w := &Writer{Path: path}
	assert.False(t, w.DatabaseExists())
	assert.NoError(t, w.Initialize(false))
	ins, err := w.PrepareInsert(
		db.FreqTableName, []string{"corpus_id", "token", "tag", "count", "arf"})
	assert.NoError(t, err)
	assert.NoError(t, ins.Exec("c1", "你好", "x", 3, 1.5))
	assert.NoError(t, ins.Exec("c1", "你好", "uw", 1, 0.5))
	assert.NoError(t, ins.Exec("c1", "世界", "x", 2, 1.0))
	assert.NoError(t, w.Commit())
	w.Close()
	assert.True(t, w.DatabaseExists())

	conn, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	defer conn.Close()
	rows, err := db.QueryTokenFreq(conn, "c1", "你好")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "你好", rows[0].Token)
	assert.Equal(t, "x", rows[0].Tag)
	assert.Equal(t, 3, rows[0].Count)
	assert.InDelta(t, 1.5, rows[0].ARF, 0.0001)
}

func TestWriterAppendKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freqs.db")
	w := &Writer{Path: path}
	assert.NoError(t, w.Initialize(false))
	ins, err := w.PrepareInsert(
		db.FreqTableName, []string{"corpus_id", "token", "tag", "count", "arf"})
	assert.NoError(t, err)
	assert.NoError(t, ins.Exec("c1", "你好", "x", 3, 0.0))
	assert.NoError(t, w.Commit())
	w.Close()

	w2 := &Writer{Path: path}
	assert.NoError(t, w2.Initialize(true))
	ins, err = w2.PrepareInsert(
		db.FreqTableName, []string{"corpus_id", "token", "tag", "count", "arf"})
	assert.NoError(t, err)
	assert.NoError(t, ins.Exec("c2", "你好", "x", 1, 0.0))
	assert.NoError(t, w2.Commit())
	w2.Close()

	conn, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	defer conn.Close()
	rows, err := db.QueryTokenFreq(conn, "c1", "你好")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
