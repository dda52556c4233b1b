// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - a relative filePath is taken relative to directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// IsRegularFile - true only for an existing file that is not a
// directory or device
func IsRegularFile(name string) bool {
	info, err := os.Stat(name)
	return nil == err && info.Mode().IsRegular()
}

// EnsureDirectory - create a private directory and its parents if
// it is missing
func EnsureDirectory(name string) error {
	info, err := os.Stat(name)
	if nil == err {
		if !info.IsDir() {
			return &os.PathError{Op: "mkdir", Path: name, Err: os.ErrExist}
		}
		return nil
	}
	return os.MkdirAll(name, 0700)
}
