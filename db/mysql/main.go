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

package mysql

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/czcorpus/zhseg/db"

	_ "github.com/go-sql-driver/mysql" // load the driver
)

// Writer exports segment frequencies into a MySQL database.
type Writer struct {
	Conf *db.Conf

	conn *sql.DB
	tx   *sql.Tx
}

// DSN produces the driver connection string for the configured target.
func (w *Writer) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s", w.Conf.User, w.Conf.Password, w.Conf.Host, w.Conf.Name)
}

func (w *Writer) open() error {
	if w.conn != nil {
		return nil
	}
	conn, err := sql.Open("mysql", w.DSN())
	if err != nil {
		return fmt.Errorf("failed to open frequency db: %w", err)
	}
	w.conn = conn
	return nil
}

func (w *Writer) DatabaseExists() bool {
	if err := w.open(); err != nil {
		return false
	}
	row := w.conn.QueryRow(
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = ? AND table_name = ?",
		w.Conf.Name, db.FreqTableName)
	var num int
	if err := row.Scan(&num); err != nil {
		return false
	}
	return num > 0
}

func (w *Writer) createSchema() error {
	_, err := w.conn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", db.FreqTableName))
	if err != nil {
		return fmt.Errorf("failed to drop table '%s': %w", db.FreqTableName, err)
	}
	_, err = w.conn.Exec(fmt.Sprintf(
		"CREATE TABLE %s (corpus_id VARCHAR(63), token VARCHAR(%d), tag VARCHAR(31), "+
			"count INTEGER, arf FLOAT, PRIMARY KEY (corpus_id, token, tag))",
		db.FreqTableName, db.DfltTokenVarcharSize))
	if err != nil {
		return fmt.Errorf("failed to create table '%s': %w", db.FreqTableName, err)
	}
	return nil
}

func (w *Writer) Initialize(appendData bool) error {
	if err := w.open(); err != nil {
		return err
	}
	if !appendData {
		log.Info().Str("database", w.Conf.Name).Msg("(re)creating mysql frequency schema")
		if err := w.createSchema(); err != nil {
			return err
		}
	}
	tx, err := w.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	w.tx = tx
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
