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

package fs

import (
	"os"
	"path/filepath"
	"sort"
)

// IsFile tests whether path is a regular file. IO errors count
// as a negative answer.
func IsFile(path string) bool {
	finfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return finfo.Mode().IsRegular()
}

// IsDir tests whether path is a directory. IO errors count
// as a negative answer.
func IsDir(path string) bool {
	finfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return finfo.Mode().IsDir()
}

// FileSize returns the size of a file in bytes or -1 in case
// of an error.
func FileSize(path string) int64 {
	finfo, err := os.Stat(path)
	if err != nil {
		return -1
	}
	return finfo.Size()
}

// AllFilesExist tests whether all the listed paths are regular files.
func AllFilesExist(paths []string) bool {
	for _, p := range paths {
		if !IsFile(p) {
			return false
		}
	}
	return true
}

// ListFilesInDir returns sorted paths of all non-directory entries
// directly inside a directory.
func ListFilesInDir(path string) ([]string, error) {
	items, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	ans := make([]string, 0, len(items))
	for _, item := range items {
		if !item.IsDir() {
			ans = append(ans, filepath.Join(path, item.Name()))
		}
	}
	sort.Strings(ans)
	return ans, nil
}
