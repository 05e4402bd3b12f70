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
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/czcorpus/zhseg"
	"github.com/czcorpus/zhseg/cnf"
	"github.com/czcorpus/zhseg/dat"
	"github.com/czcorpus/zhseg/label"
	"github.com/czcorpus/zhseg/model"

	"github.com/stretchr/testify/assert"
	"github.com/tomachalek/vertigo/v5"
)

func testSegmenter(t *testing.T) *zhseg.Segmenter {
	lab, err := label.Load(strings.NewReader("0x\n1x\n2x\n3x\n"))
	assert.NoError(t, err)
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	buf.Write(make([]byte, 4*(4*4+1*4)))
	mod, err := model.Load(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
	dict, err := dat.Build(nil)
	assert.NoError(t, err)
	return zhseg.New(lab, mod, dict, nil)
}

func testExtractor(t *testing.T, conf *cnf.ExtractConf) *SegExtractor {
	ex, err := NewSegExtractor(context.Background(), testSegmenter(t), conf, nil)
	assert.NoError(t, err)
	return ex
}

func TestMultiFileScanner(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.txt")
	f2 := filepath.Join(dir, "b.txt")
	assert.NoError(t, os.WriteFile(f1, []byte("line1\nline2\n"), 0o644))
	assert.NoError(t, os.WriteFile(f2, []byte("line3\n"), 0o644))
	sc, err := NewMultiFileScanner(f1, f2)
	assert.NoError(t, err)
	defer sc.Close()
	var lines []string
	var files []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
		files = append(files, filepath.Base(sc.CurrentFile()))
	}
	assert.NoError(t, sc.Err())
	assert.Equal(t, []string{"line1", "line2", "line3"}, lines)
	assert.Equal(t, []string{"a.txt", "a.txt", "b.txt"}, files)
}

func TestMultiFileScannerNoFiles(t *testing.T) {
	_, err := NewMultiFileScanner()
	assert.Error(t, err)
}

func TestVertSource(t *testing.T) {
	var lines []string
	vs := NewVertSource("s", func(line string) error {
		lines = append(lines, line)
		return nil
	})
	assert.NoError(t, vs.ProcStruct(&vertigo.Structure{Name: "doc"}, 1, nil))
	assert.NoError(t, vs.ProcToken(&vertigo.Token{Word: "ignored"}, 2, nil))
	assert.NoError(t, vs.ProcStruct(&vertigo.Structure{Name: "s"}, 3, nil))
	assert.NoError(t, vs.ProcToken(&vertigo.Token{Word: "你"}, 4, nil))
	assert.NoError(t, vs.ProcToken(&vertigo.Token{Word: "好"}, 5, nil))
	assert.NoError(t, vs.ProcStructClose(&vertigo.StructureClose{Name: "s"}, 6, nil))
	assert.NoError(t, vs.ProcStruct(&vertigo.Structure{Name: "s"}, 7, nil))
	assert.NoError(t, vs.ProcStructClose(&vertigo.StructureClose{Name: "s"}, 8, nil))
	assert.NoError(t, vs.ProcStructClose(&vertigo.StructureClose{Name: "doc"}, 9, nil))
	assert.NoError(t, vs.Err())
	// the empty sentence produces no line
	assert.Equal(t, []string{"你好"}, lines)
}

func TestProcLineCounts(t *testing.T) {
	conf := &cnf.ExtractConf{
		Corpus:     "c1",
		SourceType: "plain",
	}
	ex := testExtractor(t, conf)
	assert.NoError(t, ex.ProcLine("你好 你好"))
	counts := make(map[string]int)
	ex.Counter().ForEach(func(token, tag string, count int, arfVal float64) {
		counts[token+"/"+tag] = count
	})
	assert.Equal(t, map[string]int{"你好/x": 2}, counts)
}

func TestProcLineTokenMods(t *testing.T) {
	conf := &cnf.ExtractConf{
		Corpus:     "c1",
		SourceType: "plain",
		TokenMods:  []string{"toLower"},
	}
	ex := testExtractor(t, conf)
	assert.NoError(t, ex.ProcLine("ABC abc"))
	counts := make(map[string]int)
	ex.Counter().ForEach(func(token, tag string, count int, arfVal float64) {
		counts[token] = count
	})
	assert.Equal(t, map[string]int{"abc": 2}, counts)
}

func TestProcLinePuncAdjust(t *testing.T) {
	conf := &cnf.ExtractConf{
		Corpus:           "c1",
		SourceType:       "plain",
		PuncAsWhitespace: true,
	}
	ex := testExtractor(t, conf)
	assert.NoError(t, ex.ProcLine("你好。"))
	tags := make(map[string]string)
	ex.Counter().ForEach(func(token, tag string, count int, arfVal float64) {
		tags[token] = tag
	})
	assert.Equal(t, "w", tags["。"])
}

func TestRunPlain(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.txt")
	assert.NoError(t, os.WriteFile(src, []byte("你好世界\n早上好\n"), 0o644))
	conf := &cnf.ExtractConf{
		Corpus:      "c1",
		SourceType:  "plain",
		SourceFiles: []string{src},
	}
	ex := testExtractor(t, conf)
	assert.NoError(t, ex.Run())
	assert.Greater(t, ex.Counter().NumTokens(), 0)
}
