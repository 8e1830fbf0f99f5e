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

package layer

import (
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// SupportsGraphics reports whether queue can execute graphics work and
// returns the queue injected rendering should be submitted to. For a
// graphics-capable queue that is the queue itself; otherwise it is the
// first graphics-capable queue the device exposes, falling back to the
// device's primary queue, and 0 when nothing can be resolved.
//
// The family topology is re-read from the driver on every call rather than
// cached; drivers may expose queues lazily and a stale answer here would
// route a submission to a queue that cannot execute it.
func (l *Layer) SupportsGraphics(queue vulkan.VkQueue) (bool, vulkan.VkQueue) {
	qs, ok := l.registry.Queue(queue)
	if !ok {
		return false, 0
	}
	dev := qs.Device

	fallback := vulkan.VkQueue(0)
	if dev.Primary != nil {
		fallback = dev.Primary.Queue
	}
	if dev.Instance == nil ||
		dev.Instance.Table.GetPhysicalDeviceQueueFamilyProperties == nil ||
		dev.Table.GetDeviceQueue == nil {
		return false, fallback
	}

	var count uint32
	dev.Instance.Table.GetPhysicalDeviceQueueFamilyProperties(dev.PhysicalDevice, &count, nil)
	if count == 0 {
		return false, fallback
	}
	families := make([]vulkan.VkQueueFamilyProperties, count)
	dev.Instance.Table.GetPhysicalDeviceQueueFamilyProperties(dev.PhysicalDevice, &count, families)

	supports := false
	for family, props := range families[:count] {
		graphics := props.QueueFlags&vulkan.VkQueueFlagBits_VK_QUEUE_GRAPHICS_BIT != 0
		for i := uint32(0); i < props.QueueCount; i++ {
			var q vulkan.VkQueue
			dev.Table.GetDeviceQueue(dev.Device, uint32(family), i, &q)
			if q == 0 {
				continue
			}
			if graphics && fallback == 0 {
				fallback = q
			}
			if q == queue && graphics {
				supports = true
			}
		}
	}
	if supports {
		return true, queue
	}
	return false, fallback
}
