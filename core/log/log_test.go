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

package log_test

import (
	"context"
	"testing"

	"github.com/lexisother/ThatSkyLoader/core/log"
)

type recorder struct {
	messages []*log.Message
}

func (r *recorder) record(m *log.Message) { r.messages = append(r.messages, m) }

func recording() (context.Context, *recorder) {
	r := &recorder{}
	return log.PutHandler(context.Background(), log.NewHandler(r.record, nil)), r
}

func TestSeverities(t *testing.T) {
	ctx, r := recording()
	log.D(ctx, "debug %d", 1)
	log.I(ctx, "info")
	log.W(ctx, "warning")
	log.E(ctx, "error")

	if len(r.messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(r.messages))
	}
	if r.messages[0].Text != "debug 1" {
		t.Errorf("got text %q, want %q", r.messages[0].Text, "debug 1")
	}
	want := []log.Severity{log.Debug, log.Info, log.Warning, log.Error}
	for i, m := range r.messages {
		if m.Severity != want[i] {
			t.Errorf("message %d: got severity %v, want %v", i, m.Severity, want[i])
		}
	}
}

func TestFilter(t *testing.T) {
	ctx, r := recording()
	ctx = log.PutFilter(ctx, log.SeverityFilter(log.Error))
	log.I(ctx, "hidden")
	log.W(ctx, "hidden")
	log.E(ctx, "shown")

	if len(r.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(r.messages))
	}
	if r.messages[0].Text != "shown" {
		t.Errorf("got text %q, want %q", r.messages[0].Text, "shown")
	}
}

func TestTagAndProcess(t *testing.T) {
	ctx, r := recording()
	ctx = log.PutTag(ctx, "present")
	ctx = log.PutProcess(ctx, "host")
	log.I(ctx, "tagged")

	if got := r.messages[0].Tag; got != "present" {
		t.Errorf("got tag %q, want %q", got, "present")
	}
	if got := r.messages[0].Process; got != "host" {
		t.Errorf("got process %q, want %q", got, "host")
	}
}

func TestErrWraps(t *testing.T) {
	ctx, r := recording()
	base := log.Err(ctx, nil, "boom")
	wrapped := log.Err(ctx, base, "outer")

	if len(r.messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(r.messages))
	}
	if wrapped.Error() != "outer: boom" {
		t.Errorf("got error %q, want %q", wrapped.Error(), "outer: boom")
	}
}

func TestNoHandlerIsSilent(t *testing.T) {
	// Must not panic.
	log.I(context.Background(), "dropped")
}
