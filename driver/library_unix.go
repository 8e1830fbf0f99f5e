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

//go:build !windows

package driver

import (
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

var libraryNames = []string{
	"libvulkan.so.1",
	"libvulkan.so",
	"libvulkan.1.dylib",
	"libvulkan.dylib",
}

func openLibrary() (string, uintptr, uintptr, error) {
	var firstErr error
	for _, name := range libraryNames {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sym, err := purego.Dlsym(handle, "vkGetInstanceProcAddr")
		if err != nil {
			purego.Dlclose(handle)
			return "", 0, 0, errors.Wrap(err, "resolving vkGetInstanceProcAddr")
		}
		return name, handle, sym, nil
	}
	return "", 0, 0, firstErr
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}
