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
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/czcorpus/zhseg/db"
	"github.com/czcorpus/zhseg/fs"

	_ "github.com/mattn/go-sqlite3" // load the driver
)

// Writer exports segment frequencies into a sqlite3 file database.
type Writer struct {
	Path string

	conn *sql.DB
	tx   *sql.Tx
}

func (w *Writer) DatabaseExists() bool {
	return fs.IsFile(w.Path)
}

func (w *Writer) dropExisting() error {
	_, err := w.conn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", db.FreqTableName))
	if err != nil {
		return fmt.Errorf("failed to drop table '%s': %w", db.FreqTableName, err)
	}
	return nil
}

func (w *Writer) createSchema() error {
	_, err := w.conn.Exec(fmt.Sprintf(
		"CREATE TABLE %s (corpus_id TEXT, token TEXT, tag TEXT, count INTEGER, arf REAL, "+
			"PRIMARY KEY (corpus_id, token, tag))", db.FreqTableName))
	if err != nil {
		return fmt.Errorf("failed to create table '%s': %w", db.FreqTableName, err)
	}
	_, err = w.conn.Exec(fmt.Sprintf(
		"CREATE INDEX %s_corpus_id_idx ON %s(corpus_id)", db.FreqTableName, db.FreqTableName))
	if err != nil {
		return fmt.Errorf("failed to create corpus_id index: %w", err)
	}
	return nil
}

// Initialize opens the database and begins the export transaction.
// Without appendData any existing export table is dropped first.
func (w *Writer) Initialize(appendData bool) error {
	var err error
	w.conn, err = sql.Open("sqlite3", w.Path)
	if err != nil {
		return fmt.Errorf("failed to open frequency db: %w", err)
	}
	if !appendData {
		log.Info().Str("path", w.Path).Msg("(re)creating sqlite frequency schema")
		if err = w.dropExisting(); err != nil {
			return err
		}
		if err = w.createSchema(); err != nil {
			return err
		}
	}
	w.tx, err = w.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	return nil
}

func (w *Writer) PrepareInsert(table string, cols []string) (db.InsertOperation, error) {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "?"
	}
	stmt, err := w.tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare INSERT: %w", err)
	}
	return &db.Insert{Stmt: stmt}, nil
}

func (w *Writer) Commit() error {
	if w.tx == nil {
		return nil
	}
	err := w.tx.Commit()
	w.tx = nil
	return err
}

func (w *Writer) Rollback() error {
	if w.tx == nil {
		return nil
	}
	err := w.tx.Rollback()
	w.tx = nil
	return err
}

func (w *Writer) Close() {
	if w.conn != nil {
		w.conn.Close()
	}
}
