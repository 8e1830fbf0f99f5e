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

package driver

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const libraryName = "vulkan-1.dll"

func openLibrary() (string, uintptr, uintptr, error) {
	// System DLL only: picking up a vulkan-1.dll from the application
	// directory would be a planting vector.
	dll := windows.NewLazySystemDLL(libraryName)
	if err := dll.Load(); err != nil {
		return "", 0, 0, err
	}
	proc := dll.NewProc("vkGetInstanceProcAddr")
	if err := proc.Find(); err != nil {
		return "", 0, 0, errors.Wrap(err, "resolving vkGetInstanceProcAddr")
	}
	return libraryName, dll.Handle(), proc.Addr(), nil
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}
