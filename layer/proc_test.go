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

package layer_test

import (
	"testing"

	"github.com/lexisother/ThatSkyLoader/core/assert"
	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/layer"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

func TestGetInstanceProcAddrIntercepts(t *testing.T) {
	ctx := log.Testing(t)
	l := layer.New(ctx, nil)

	_, ok := l.GetInstanceProcAddr(0, "vkCreateInstance").(vulkan.PFNvkCreateInstance)
	assert.For(ctx, "vkCreateInstance").ThatBoolean(ok).IsTrue()
	_, ok = l.GetInstanceProcAddr(0, "vkDestroyInstance").(vulkan.PFNvkDestroyInstance)
	assert.For(ctx, "vkDestroyInstance").ThatBoolean(ok).IsTrue()
	_, ok = l.GetInstanceProcAddr(0, "vkCreateDevice").(vulkan.PFNvkCreateDevice)
	assert.For(ctx, "vkCreateDevice").ThatBoolean(ok).IsTrue()
	_, ok = l.GetInstanceProcAddr(0, "vkGetDeviceProcAddr").(vulkan.PFNvkGetDeviceProcAddr)
	assert.For(ctx, "vkGetDeviceProcAddr").ThatBoolean(ok).IsTrue()

	// Unintercepted names without an instance cannot be resolved.
	assert.For(ctx, "unknown global").That(l.GetInstanceProcAddr(0, "vkEnumeratePhysicalDevices")).IsNil()
}

func TestGetInstanceProcAddrDefers(t *testing.T) {
	ctx := log.Testing(t)
	d := newFakeDriver()
	l := layer.New(ctx, nil)
	instance := createInstance(ctx, l, d)

	// Unintercepted names resolve through the tracked next link.
	_, ok := l.GetInstanceProcAddr(instance, "vkEnumeratePhysicalDevices").(vulkan.PFNvkEnumeratePhysicalDevices)
	assert.For(ctx, "vkEnumeratePhysicalDevices").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "unknown name").That(l.GetInstanceProcAddr(instance, "vkMadeUp")).IsNil()
}

func TestGetDeviceProcAddrIntercepts(t *testing.T) {
	ctx := log.Testing(t)
	d := newFakeDriver()
	l := layer.New(ctx, nil)
	instance := createInstance(ctx, l, d)
	device := createDevice(ctx, l, d, instance)

	_, ok := l.GetDeviceProcAddr(device, "vkQueuePresentKHR").(vulkan.PFNvkQueuePresentKHR)
	assert.For(ctx, "vkQueuePresentKHR").ThatBoolean(ok).IsTrue()
	_, ok = l.GetDeviceProcAddr(device, "vkCreateSwapchainKHR").(vulkan.PFNvkCreateSwapchainKHR)
	assert.For(ctx, "vkCreateSwapchainKHR").ThatBoolean(ok).IsTrue()
	_, ok = l.GetDeviceProcAddr(device, "vkAcquireNextImageKHR").(vulkan.PFNvkAcquireNextImageKHR)
	assert.For(ctx, "vkAcquireNextImageKHR").ThatBoolean(ok).IsTrue()
	_, ok = l.GetDeviceProcAddr(device, "vkDestroyDevice").(vulkan.PFNvkDestroyDevice)
	assert.For(ctx, "vkDestroyDevice").ThatBoolean(ok).IsTrue()

	// Unintercepted names resolve through the device's next link.
	_, ok = l.GetDeviceProcAddr(device, "vkQueueSubmit").(vulkan.PFNvkQueueSubmit)
	assert.For(ctx, "vkQueueSubmit").ThatBoolean(ok).IsTrue()
}
