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

package assert

import (
	"bytes"
	"fmt"
)

type (
	// level is used to control what output level is used when flushing
	// assertion text.
	level int

	// Assertion is the type for the start of an assertion line.
	// You construct an assertion from an Output using assert.For.
	Assertion struct {
		level level
		out   *bytes.Buffer
		to    Output
	}
)

const (
	// Log is the informational level.
	Log = level(iota)
	// Error is used for things that cause test failures but do not abort.
	Error
	// Fatal is used for failures that cause the running test to immediately
	// stop.
	Fatal
)

// Critical switches this assertion from Error to Fatal.
func (a *Assertion) Critical() *Assertion {
	a.level = Fatal
	return a
}

// Commit writes the accumulated message out to the output object.
func (a *Assertion) Commit() {
	switch a.level {
	case Fatal:
		a.to.Fatal(a.out.String())
	case Error:
		a.to.Error(a.out.String())
	default:
		a.to.Log(a.out.String())
	}
}

// printPretty writes a value to the output buffer, quoting strings and
// errors.
func (a *Assertion) printPretty(value interface{}) {
	switch value := value.(type) {
	case error:
		fmt.Fprintf(a.out, "`%v`", value)
	case string:
		fmt.Fprintf(a.out, "`%s`", value)
	default:
		fmt.Fprint(a.out, value)
	}
}

// Compare writes the standard assertion failure message layout for a value
// compared against an expectation.
func (a *Assertion) Compare(value interface{}, op string, expect ...interface{}) *Assertion {
	a.out.WriteString("Got      ")
	a.printPretty(value)
	a.out.WriteRune('\n')
	fmt.Fprintf(a.out, "Expect  %s ", op)
	for i, e := range expect {
		if i > 0 {
			a.out.WriteRune(' ')
		}
		a.printPretty(e)
	}
	a.out.WriteRune('\n')
	return a
}

// CompareRaw writes a raw comparison message.
func (a *Assertion) CompareRaw(value, op, expect string) *Assertion {
	fmt.Fprintf(a.out, "Got      %s\nExpect  %s %s\n", value, op, expect)
	return a
}

// Test commits the assertion message if the condition is false, and returns
// the condition.
func (a *Assertion) Test(condition bool) bool {
	if !condition {
		a.Commit()
	}
	return condition
}
