// Copyright (C) 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Handler is the interface to an object responsible for displaying or storing
// log messages.
type Handler interface {
	Handle(*Message)
	Close()
}

type handler struct {
	handle func(*Message)
	close  func()
}

func (h handler) Handle(m *Message) { h.handle(m) }
func (h handler) Close()            { h.close() }

// NewHandler returns a Handler that calls handle for each message and close
// when the handler is closed.
func NewHandler(handle func(*Message), close func()) Handler {
	if close == nil {
		close = func() {}
	}
	return handler{handle, close}
}

// Writer returns a Handler that writes each message as a single line to w.
// Writer is safe to use from multiple threads.
func Writer(w io.Writer) Handler {
	mutex := &sync.Mutex{}
	return NewHandler(func(m *Message) {
		mutex.Lock()
		defer mutex.Unlock()
		fmt.Fprintln(w, m.String())
	}, nil)
}

// Std returns a Handler that writes messages to stdout and errors to stderr.
func Std() Handler {
	out, err := Writer(os.Stdout), Writer(os.Stderr)
	return NewHandler(func(m *Message) {
		if m.Severity >= Error {
			err.Handle(m)
		} else {
			out.Handle(m)
		}
	}, nil)
}

// Channel returns a Handler that passes messages to the supplied handler on a
// separate go-routine. Closing the returned handler blocks until all pending
// messages have been handled, then closes h.
func Channel(h Handler, size int) Handler {
	c := make(chan *Message, size)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for m := range c {
			h.Handle(m)
		}
	}()
	return NewHandler(func(m *Message) { c <- m }, func() {
		close(c)
		<-done
		h.Close()
	})
}
