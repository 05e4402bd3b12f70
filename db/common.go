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

// Package db defines the storage interface for segment frequency
// exports along with pieces shared by the concrete sqlite/mysql
// implementations.
package db

import (
	"database/sql"
	"fmt"
)

const (
	// FreqTableName is the table all writers export into.
	FreqTableName = "segment_freq"

	// DfltTokenVarcharSize limits the token column size in engines
	// which need an explicit VARCHAR length.
	DfltTokenVarcharSize = 255
)

// Conf describes a frequency database target.
type Conf struct {
	// Type is either "sqlite" or "mysql"
	Type string `json:"type"`

	// Name is a file path for sqlite, a database name for mysql
	Name string `json:"name"`

	Host     string `json:"host,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
}

// InsertOperation is a prepared row insert.
type InsertOperation interface {
	Exec(values ...any) error
}

// Writer is implemented by the concrete database backends. The
// lifecycle is Initialize - PrepareInsert/Exec* - Commit (or
// Rollback) - Close.
type Writer interface {
	DatabaseExists() bool
	Initialize(appendData bool) error
	PrepareInsert(table string, cols []string) (InsertOperation, error)
	Commit() error
	Rollback() error
	Close()
}

// Insert wraps a prepared statement into InsertOperation and maps
// empty strings to SQL NULL.
type Insert struct {
	Stmt *sql.Stmt
}

func (ins *Insert) Exec(values ...any) error {
	for i, v := range values {
		if s, ok := v.(string); ok && s == "" {
			values[i] = sql.NullString{}
		}
	}
	_, err := ins.Stmt.Exec(values...)
	return err
}

// FreqRow is a single exported frequency record.
type FreqRow struct {
	Token string
	Tag   string
	Count int
	ARF   float64
}

// QueryTokenFreq fetches the stored frequencies of a token within
// a corpus, one row per tag.
func QueryTokenFreq(database *sql.DB, corpusID, token string) ([]FreqRow, error) {
	rows, err := database.Query(
		fmt.Sprintf(
			"SELECT token, tag, count, arf FROM %s WHERE corpus_id = ? AND token = ? ORDER BY count DESC",
			FreqTableName),
		corpusID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to query token frequency: %w", err)
	}
	defer rows.Close()
	var ans []FreqRow
	for rows.Next() {
		var item FreqRow
		var arf sql.NullFloat64
		if err := rows.Scan(&item.Token, &item.Tag, &item.Count, &arf); err != nil {
			return nil, fmt.Errorf("failed to query token frequency: %w", err)
		}
		item.ARF = arf.Float64
		ans = append(ans, item)
	}
	return ans, rows.Err()
}
