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
	"bufio"
	"fmt"
	"os"
)

// MultiFileScanner reads lines from multiple plain-text files as if
// they formed a single stream.
type MultiFileScanner struct {
	filePaths    []string
	currentIndex int
	currentFile  *os.File
	scanner      *bufio.Scanner
	err          error
}

// NewMultiFileScanner creates a scanner over the listed files; at
// least one path is required and the first file is opened eagerly.
func NewMultiFileScanner(filePaths ...string) (*MultiFileScanner, error) {
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("at least one file path required")
	}
	mfs := &MultiFileScanner{
		filePaths:    filePaths,
		currentIndex: -1,
	}
	if !mfs.openNextFile() {
		return nil, mfs.err
	}
	return mfs, nil
}

// CurrentFile returns the path of the file the last line came from.
func (mfs *MultiFileScanner) CurrentFile() string {
	if mfs.currentIndex >= 0 && mfs.currentIndex < len(mfs.filePaths) {
		return mfs.filePaths[mfs.currentIndex]
	}
	return ""
}

func (mfs *MultiFileScanner) openNextFile() bool {
	if mfs.currentFile != nil {
		mfs.currentFile.Close()
		mfs.currentFile = nil
		mfs.scanner = nil
	}
	mfs.currentIndex++
	if mfs.currentIndex >= len(mfs.filePaths) {
		return false
	}
	file, err := os.Open(mfs.filePaths[mfs.currentIndex])
	if err != nil {
		mfs.err = err
		return false
	}
	mfs.currentFile = file
	mfs.scanner = bufio.NewScanner(file)
	return true
}

// Scan advances to the next line, returning false when the last
// file is exhausted or an error occurred.
func (mfs *MultiFileScanner) Scan() bool {
	for mfs.scanner != nil {
		if mfs.scanner.Scan() {
			return true
		}
		if err := mfs.scanner.Err(); err != nil {
			mfs.err = err
			return false
		}
		if !mfs.openNextFile() {
			return false
		}
	}
	return false
}

// Text returns the current line.
func (mfs *MultiFileScanner) Text() string {
	if mfs.scanner == nil {
		return ""
	}
	return mfs.scanner.Text()
}

// Err returns the first error encountered during scanning.
func (mfs *MultiFileScanner) Err() error {
	return mfs.err
}

// Close closes any open file handle.
func (mfs *MultiFileScanner) Close() error {
	if mfs.currentFile != nil {
		err := mfs.currentFile.Close()
		mfs.currentFile = nil
		mfs.scanner = nil
		return err
	}
	return nil
}
