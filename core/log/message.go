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
	"bytes"
	"fmt"
	"time"
)

// Message is a single log entry.
type Message struct {
	// Text is the message body.
	Text string
	// Time is the time the message was logged.
	Time time.Time
	// Severity is the importance of the log message.
	Severity Severity
	// Tag is the optional tag associated with the log record.
	Tag string
	// Process is the name of the process that generated the message.
	Process string
	// StopProcess indicates the process should stop after logging this
	// message. Only set for messages logged with Fatal severity.
	StopProcess bool
}

// String returns the message formatted in a single human readable line.
func (m *Message) String() string {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "%s%s: ", m.Time.Format("15:04:05.000"), m.Severity.Short())
	if m.Tag != "" {
		fmt.Fprintf(buf, "[%s] ", m.Tag)
	}
	buf.WriteString(m.Text)
	return buf.String()
}
