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

// Package library exposes the frequency extraction pipeline for
// embedding into other applications.
package library

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/czcorpus/zhseg"
	"github.com/czcorpus/zhseg/cnf"
	"github.com/czcorpus/zhseg/dat"
	"github.com/czcorpus/zhseg/db/factory"
	"github.com/czcorpus/zhseg/fs"
	"github.com/czcorpus/zhseg/proc"
)

func sendErrStatus(statusChan chan proc.Status, file string, err error) {
	statusChan <- proc.Status{
		Datetime: time.Now(),
		File:     file,
		Error:    err,
	}
}

// LoadSegmenter builds an analyzer from a task configuration: the
// model directory plus any configured user dictionaries.
func LoadSegmenter(conf *cnf.ExtractConf) (*zhseg.Segmenter, error) {
	segmenter, err := zhseg.Load(conf.ModelPath)
	if err != nil {
		return nil, err
	}
	for _, path := range conf.UserDicts {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load user dictionary: %w", err)
		}
		d, err := dat.LoadSetTxt(f, true)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to load user dictionary %s: %w", path, err)
		}
		segmenter.AddPostProcessor(zhseg.NewPostProcessor(d, "uw"))
		log.Info().Str("path", path).Msg("attached user dictionary")
	}
	return segmenter, nil
}

// ExtractData segments the configured sources and stores segment
// frequencies based on the specification in the conf argument.
// The returned status channel reports progress and possible errors
// and is closed once the task finishes.
func ExtractData(ctx context.Context, conf *cnf.ExtractConf, appendData bool) (chan proc.Status, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if !fs.AllFilesExist(conf.SourceFiles) {
		return nil, fmt.Errorf("some of the source files do not exist")
	}
	segmenter, err := LoadSegmenter(conf)
	if err != nil {
		return nil, err
	}
	dbWriter, err := factory.NewDatabaseWriter(&conf.DB)
	if err != nil {
		return nil, err
	}
	if appendData && !dbWriter.DatabaseExists() {
		return nil, fmt.Errorf("append flag is set but the database %s does not exist", conf.DB.Name)
	}

	statusChan := make(chan proc.Status, 10)
	go func() {
		defer dbWriter.Close()
		defer close(statusChan)

		extractor, err := proc.NewSegExtractor(ctx, segmenter, conf, statusChan)
		if err != nil {
			sendErrStatus(statusChan, "", err)
			return
		}
		if err := dbWriter.Initialize(appendData); err != nil {
			sendErrStatus(statusChan, "", err)
			return
		}
		if err := extractor.Run(); err != nil {
			dbWriter.Rollback()
			sendErrStatus(statusChan, "", err)
			return
		}
		if err := extractor.Finish(dbWriter); err != nil {
			dbWriter.Rollback()
			sendErrStatus(statusChan, "", err)
			return
		}
		if err := dbWriter.Commit(); err != nil {
			sendErrStatus(statusChan, "", err)
		}
	}()
	return statusChan, nil
}
