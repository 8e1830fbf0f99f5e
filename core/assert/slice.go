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
	"fmt"
	"reflect"
)

// OnSlice is the result of calling ThatSlice on an Assertion.
// It provides assertion tests that are specific to slice types.
type OnSlice struct {
	assertion *Assertion
	slice     reflect.Value
}

// ThatSlice returns an OnSlice for assertions on slice type objects.
// Calling this with a non slice type will result in panics.
func (a *Assertion) ThatSlice(slice interface{}) OnSlice {
	return OnSlice{assertion: a, slice: reflect.ValueOf(slice)}
}

// IsEmpty asserts that the slice was of length 0.
func (o OnSlice) IsEmpty() bool {
	return o.assertion.CompareRaw(fmt.Sprint(o.slice.Len()), "", "is empty").Test(o.slice.Len() == 0)
}

// IsNotEmpty asserts that the slice has elements.
func (o OnSlice) IsNotEmpty() bool {
	return o.assertion.CompareRaw(fmt.Sprint(o.slice.Len()), "length >", "0").Test(o.slice.Len() > 0)
}

// IsLength asserts that the slice has exactly the specified number of
// elements.
func (o OnSlice) IsLength(length int) bool {
	return o.assertion.CompareRaw(fmt.Sprint(o.slice.Len()), "length ==", fmt.Sprint(length)).Test(o.slice.Len() == length)
}

// DeepEquals asserts the slice matches the expected slice using
// reflect.DeepEqual.
func (o OnSlice) DeepEquals(expected interface{}) bool {
	return o.assertion.Compare(o.slice.Interface(), "deep ==", expected).Test(reflect.DeepEqual(o.slice.Interface(), expected))
}
