// Package playlist emits M3U playlist files, appending
// one entry per installed track. Appends are serialized
// so that concurrent writers never interleave lines.
package playlist

import (
	"fmt"
	"os"
	"sync"

	"github.com/streambinder/tracksmith/util"
)

const header = "#EXTM3U"

type M3U struct {
	mutex sync.Mutex
	file  *os.File
}

func NewM3U(path string) (*M3U, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := util.ErrOnly(fmt.Fprintln(file, header)); err != nil {
			file.Close()
			return nil, err
		}
	}

	return &M3U{file: file}, nil
}

// Add appends the given track path as
// a playlist entry, one line per path
func (m3u *M3U) Add(path string) error {
	m3u.mutex.Lock()
	defer m3u.mutex.Unlock()

	return util.ErrOnly(fmt.Fprintln(m3u.file, path))
}

func (m3u *M3U) Close() error {
	m3u.mutex.Lock()
	defer m3u.mutex.Unlock()
	return m3u.file.Close()
}
