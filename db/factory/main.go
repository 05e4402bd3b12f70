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

package factory

import (
	"database/sql"
	"fmt"

	"github.com/czcorpus/zhseg/db"
	"github.com/czcorpus/zhseg/db/mysql"
	"github.com/czcorpus/zhseg/db/sqlite"
)

// NewDatabaseWriter creates a frequency writer matching conf.Type.
func NewDatabaseWriter(conf *db.Conf) (db.Writer, error) {
	switch conf.Type {
	case "sqlite":
		return &sqlite.Writer{Path: conf.Name}, nil
	case "mysql":
		return &mysql.Writer{Conf: conf}, nil
	default:
		return nil, fmt.Errorf("no valid database writer for type %q", conf.Type)
	}
}

// OpenDB opens a read-only-ish connection to an existing frequency
// database (e.g. for the freq lookup command).
func OpenDB(conf *db.Conf) (*sql.DB, error) {
	switch conf.Type {
	case "sqlite":
		return sql.Open("sqlite3", conf.Name)
	case "mysql":
		w := &mysql.Writer{Conf: conf}
		return sql.Open("mysql", w.DSN())
	default:
		return nil, fmt.Errorf("no valid database reader for type %q", conf.Type)
	}
}
