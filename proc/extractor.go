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

package proc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/czcorpus/zhseg"
	"github.com/czcorpus/zhseg/cnf"
	"github.com/czcorpus/zhseg/db"
	"github.com/czcorpus/zhseg/ptcount"
	"github.com/czcorpus/zhseg/ptcount/modders"

	"github.com/tomachalek/vertigo/v5"
)

// ErrTooManyErrors is returned when the number of failed lines
// exceeds the configured limit.
var ErrTooManyErrors = errors.New("too many segmentation errors")

const statusEachNthLine = 10000

// SegExtractor feeds corpus lines through a Segmenter and
// accumulates segment frequencies. Progress and per-line failures
// are reported through a status channel; a failed line never stops
// the task until MaxNumErrors is exceeded.
type SegExtractor struct {
	segmenter    *zhseg.Segmenter
	conf         *cnf.ExtractConf
	counter      *ptcount.SegCounter
	mods         *modders.ModderChain
	statusChan   chan<- Status
	ctx          context.Context
	currFile     string
	lineCounter  int
	errorCounter int
}

// NewSegExtractor creates an extractor for one configured task.
func NewSegExtractor(
	ctx context.Context,
	segmenter *zhseg.Segmenter,
	conf *cnf.ExtractConf,
	statusChan chan<- Status,
) (*SegExtractor, error) {
	mods, err := modders.NewModderChainByNames(conf.TokenMods)
	if err != nil {
		return nil, err
	}
	return &SegExtractor{
		segmenter:  segmenter,
		conf:       conf,
		counter:    ptcount.NewSegCounter(conf.CalcARF),
		mods:       mods,
		statusChan: statusChan,
		ctx:        ctx,
	}, nil
}

func (ex *SegExtractor) sendStatus(err error) {
	if ex.statusChan == nil {
		return
	}
	ex.statusChan <- Status{
		Datetime:       time.Now(),
		File:           ex.currFile,
		ProcessedLines: ex.lineCounter,
		Error:          err,
	}
}

// ProcLine segments a single line and adds its non-whitespace
// segments to the counter.
func (ex *SegExtractor) ProcLine(line string) error {
	if err := ex.ctx.Err(); err != nil {
		return err
	}
	ex.lineCounter++
	pre := ex.segmenter.Preprocess(line)
	words, err := ex.segmenter.Cut(pre)
	if err != nil {
		ex.errorCounter++
		ex.sendStatus(fmt.Errorf("line %d: %w", ex.lineCounter, err))
		if ex.errorCounter > ex.conf.MaxNumErrors {
			return ErrTooManyErrors
		}
		return nil
	}
	if ex.conf.PuncAsWhitespace {
		words = zhseg.PuncAdjust(words)
	}
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		ex.counter.Add(ex.mods.Mod(w.Text), w.Tag)
	}
	if ex.lineCounter%statusEachNthLine == 0 {
		ex.sendStatus(nil)
	}
	return nil
}

// RunPlain processes plain-text sources, one analyzed line per
// input line.
func (ex *SegExtractor) RunPlain(files []string) error {
	scanner, err := NewMultiFileScanner(files...)
	if err != nil {
		return err
	}
	defer scanner.Close()
	for scanner.Scan() {
		ex.currFile = scanner.CurrentFile()
		if err := ex.ProcLine(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// RunVertical processes vertical files, one analyzed line per atom
// structure.
func (ex *SegExtractor) RunVertical(files []string) error {
	for _, file := range files {
		ex.currFile = file
		src := NewVertSource(ex.conf.Vertical.AtomStructure, ex.ProcLine)
		parserConf := &vertigo.ParserConf{
			InputFilePath:         file,
			StructAttrAccumulator: "nil",
			Encoding:              ex.conf.Vertical.Encoding,
			LogProgressEachNth:    1000000,
		}
		log.Info().Str("vertical", file).Msg("processing vertical file")
		if err := vertigo.ParseVerticalFile(parserConf, src); err != nil {
			return err
		}
		if err := src.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Run dispatches on the configured source type.
func (ex *SegExtractor) Run() error {
	switch ex.conf.SourceType {
	case "plain":
		return ex.RunPlain(ex.conf.SourceFiles)
	case "vertical":
		return ex.RunVertical(ex.conf.SourceFiles)
	default:
		return fmt.Errorf("unknown source type %q", ex.conf.SourceType)
	}
}

// Counter exposes the accumulated frequencies.
func (ex *SegExtractor) Counter() *ptcount.SegCounter {
	return ex.counter
}

// Finish writes the accumulated counts into the database. The
// writer must be initialized; committing stays with the caller.
func (ex *SegExtractor) Finish(writer db.Writer) error {
	insert, err := writer.PrepareInsert(
		db.FreqTableName, []string{"corpus_id", "token", "tag", "count", "arf"})
	if err != nil {
		return err
	}
	var insertErr error
	ex.counter.ForEach(func(token, tag string, count int, arfVal float64) {
		if insertErr != nil {
			return
		}
		insertErr = insert.Exec(ex.conf.Corpus, token, tag, count, arfVal)
	})
	if insertErr != nil {
		return fmt.Errorf("failed to store frequencies: %w", insertErr)
	}
	log.Info().
		Int("records", ex.counter.Size()).
		Int("tokens", ex.counter.NumTokens()).
		Str("corpus", ex.conf.Corpus).
		Msg("stored frequency records")
	return nil
}
