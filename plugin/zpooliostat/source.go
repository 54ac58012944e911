// SPDX-License-Identifier: GPL-3.0-or-later

package zpooliostat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// sectionSource yields one raw agent section per read.
type sectionSource interface {
	read() ([]byte, error)
}

func newSectionSource(path string, timeout time.Duration) sectionSource {
	if path == "-" {
		return &stdinSource{timeout: timeout}
	}
	return &fileSource{path: path}
}

type fileSource struct {
	path string
}

func (s *fileSource) read() ([]byte, error) {
	bs, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read section: %w", err)
	}
	return bs, nil
}

type stdinSource struct {
	timeout time.Duration
}

func (s *stdinSource) read() ([]byte, error) {
	if s.timeout > 0 {
		// deadlines are unsupported when stdin is a regular file
		err := os.Stdin.SetReadDeadline(time.Now().Add(s.timeout))
		if err != nil && !errors.Is(err, os.ErrNoDeadline) {
			return nil, fmt.Errorf("read section: %v", err)
		}
	}

	bs, err := io.ReadAll(os.Stdin)
	if err != nil {
		if errors.Is(err, os.ErrDeadlineExceeded) {
			return nil, fmt.Errorf("read section: timed out after %s", s.timeout)
		}
		return nil, fmt.Errorf("read section: %w", err)
	}

	return bs, nil
}
