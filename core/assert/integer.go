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

// OnInteger is the result of calling ThatInteger on an Assertion.
// It provides assertion tests that are specific to integer types.
type OnInteger struct {
	assertion *Assertion
	value     int
}

// ThatInteger returns an OnInteger for integer based assertions.
func (a *Assertion) ThatInteger(value int) OnInteger {
	return OnInteger{assertion: a, value: value}
}

// Equals asserts that the supplied integer equals the expected integer.
func (o OnInteger) Equals(expect int) bool {
	return o.assertion.Compare(o.value, "==", expect).Test(o.value == expect)
}

// NotEquals asserts that the supplied integer is not equal to the test
// integer.
func (o OnInteger) NotEquals(test int) bool {
	return o.assertion.Compare(o.value, "!=", test).Test(o.value != test)
}

// IsAtLeast asserts that the supplied integer is at least the minimum
// integer.
func (o OnInteger) IsAtLeast(min int) bool {
	return o.assertion.Compare(o.value, ">=", min).Test(o.value >= min)
}

// IsAtMost asserts that the supplied integer is at most the maximum integer.
func (o OnInteger) IsAtMost(max int) bool {
	return o.assertion.Compare(o.value, "<=", max).Test(o.value <= max)
}

// IsBetween asserts that the supplied integer is in the inclusive range
// [min, max].
func (o OnInteger) IsBetween(min, max int) bool {
	return o.assertion.Compare(o.value, "in", min, "to", max).Test(o.value >= min && o.value <= max)
}
