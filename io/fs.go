// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"io"
	"os"
	"path/filepath"
)

// CreateFS is a file system that files can be created in.
type CreateFS interface {
	// Create creates or truncates a file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// DirFS is a CreateFS rooted at a host directory.
type DirFS string

var _ CreateFS = DirFS("")

func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	file, err = os.Create(filepath.Join(string(dir), filepath.FromSlash(name)))
	return
}
