// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package clef

import (
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer serializes CLEF documents as newline-delimited JSON onto an
// underlying stream. It is safe for concurrent use: writes from different
// goroutines are never interleaved within a line.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter wraps out, typically os.Stdout, as a CLEF line writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WriteDocument marshals doc to compact JSON and appends a trailing
// newline, holding the writer's lock for the duration of the write so
// concurrent callers never interleave partial lines.
func (w *Writer) WriteDocument(doc map[string]any) error {
	line, err := jsonAPI.Marshal(doc)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err = w.out.Write(line)
	return err
}
