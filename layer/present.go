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
	"context"

	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/overlay"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

// CreateSwapchain intercepts vkCreateSwapchainKHR. The previous generation's
// frame resources refer to images of the old swapchain, so they are drained
// and destroyed before the new swapchain exists; the new extent is recorded
// for the rebuild that happens lazily at the next present.
func (l *Layer) CreateSwapchain(
	device vulkan.VkDevice,
	info *vulkan.VkSwapchainCreateInfoKHR,
	allocator *vulkan.VkAllocationCallbacks,
	out *vulkan.VkSwapchainKHR) vulkan.VkResult {

	dev := l.registry.Device(device.Key())
	dev.frames.invalidate(l.ctx)
	dev.frames.setExtent(info.ImageExtent)
	log.D(l.ctx, "swapchain creation on device %#x: extent %dx%d",
		uintptr(device), info.ImageExtent.Width, info.ImageExtent.Height)
	return dev.Table.CreateSwapchainKHR(device, info, allocator, out)
}

// AcquireNextImage intercepts vkAcquireNextImageKHR. Pass-through today; the
// interception point exists so acquire timing shows up in debug logs next to
// the present rewrites.
func (l *Layer) AcquireNextImage(
	device vulkan.VkDevice,
	swapchain vulkan.VkSwapchainKHR,
	timeout uint64,
	semaphore vulkan.VkSemaphore,
	fence vulkan.VkFence,
	imageIndex *uint32) vulkan.VkResult {

	dev := l.registry.Device(device.Key())
	r := dev.Table.AcquireNextImageKHR(device, swapchain, timeout, semaphore, fence, imageIndex)
	log.D(l.ctx, "acquire on device %#x returned %v", uintptr(device), r)
	return r
}

// QueuePresent intercepts vkQueuePresentKHR. Each presented swapchain gets
// the overlay recorded against the image being shown, submitted so that it
// executes after the application's own rendering, and is then forwarded as
// its own single-swapchain present waiting on the injected work. The caller
// sees the first failing result; per-swapchain results are reported through
// info.Results when the application asked for them.
func (l *Layer) QueuePresent(queue vulkan.VkQueue, info *vulkan.VkPresentInfoKHR) vulkan.VkResult {
	ctx := l.ctx

	// Resolve through the queue map first. A queue the layer never saw can
	// still carry a live device's dispatch key; that present is forwarded
	// unmodified. The registry asserts only when the device is gone too,
	// which means a present on a destroyed device.
	var dev *DeviceState
	if qs, known := l.registry.Queue(queue); known {
		dev = qs.Device
	} else {
		dev = l.registry.Device(queue.Key())
		log.W(ctx, "%v (%#x), forwarding untouched", ErrUnknownQueue, uintptr(queue))
		return dev.Table.QueuePresentKHR(queue, info)
	}

	supportsGraphics, injectionQueue := l.SupportsGraphics(queue)
	if injectionQueue == 0 {
		log.W(ctx, "no graphics-capable queue resolved for %#x, forwarding untouched", uintptr(queue))
		return dev.Table.QueuePresentKHR(queue, info)
	}

	overall := vulkan.VkResult_VK_SUCCESS
	record := func(i int, r vulkan.VkResult) {
		if info.Results != nil {
			info.Results[i] = r
		}
		if r != vulkan.VkResult_VK_SUCCESS && overall == vulkan.VkResult_VK_SUCCESS {
			overall = r
		}
	}

	for i, swapchain := range info.Swapchains {
		// The application's wait semaphores must be consumed exactly once
		// across the whole call; the first batch takes them all.
		var waits []vulkan.VkSemaphore
		if i == 0 {
			waits = info.WaitSemaphores
		}
		imageIndex := info.ImageIndices[i]

		if err := dev.frames.ensureBuilt(ctx, dev, swapchain); err != nil {
			if err != errBuildFailed {
				log.E(ctx, "frame resources for swapchain %#x: %v", uint64(swapchain), err)
			}
			record(i, l.forwardPresent(dev, queue, swapchain, imageIndex, waits))
			continue
		}
		if imageIndex >= dev.frames.imageCount {
			log.E(ctx, "present names image %d of %d tracked: %v",
				imageIndex, dev.frames.imageCount, ErrImageIndexOutOfRange)
			record(i, vulkan.VkResult_VK_ERROR_INITIALIZATION_FAILED)
			continue
		}

		slot := &dev.frames.slots[imageIndex]
		if r := dev.frames.record(ctx, l.renderer, dev, slot, injectionQueue); r != vulkan.VkResult_VK_SUCCESS {
			log.W(ctx, "overlay recording for image %d failed (%v), forwarding untouched", imageIndex, r)
			record(i, l.forwardPresent(dev, queue, swapchain, imageIndex, waits))
			continue
		}

		if r := l.submitOverlay(dev, slot, queue, injectionQueue, supportsGraphics, waits); r != vulkan.VkResult_VK_SUCCESS {
			log.E(ctx, "overlay submission for image %d failed: %v", imageIndex, r)
			record(i, r)
			continue
		}

		// Rewritten present: one swapchain, waiting only on the injected
		// submission. The original wait semaphores were consumed by it.
		forward := vulkan.VkPresentInfoKHR{
			WaitSemaphores: []vulkan.VkSemaphore{slot.renderDone},
			Swapchains:     []vulkan.VkSwapchainKHR{swapchain},
			ImageIndices:   []uint32{imageIndex},
		}
		record(i, dev.Table.QueuePresentKHR(queue, &forward))
	}
	return overall
}

// forwardPresent sends one swapchain of the original present downstream
// unmodified, preserving whichever wait semaphores belong to this batch.
func (l *Layer) forwardPresent(
	dev *DeviceState,
	queue vulkan.VkQueue,
	swapchain vulkan.VkSwapchainKHR,
	imageIndex uint32,
	waits []vulkan.VkSemaphore) vulkan.VkResult {

	forward := vulkan.VkPresentInfoKHR{
		WaitSemaphores: waits,
		Swapchains:     []vulkan.VkSwapchainKHR{swapchain},
		ImageIndices:   []uint32{imageIndex},
	}
	return dev.Table.QueuePresentKHR(queue, &forward)
}

// submitOverlay submits the recorded slot so the overlay executes after the
// application's frame.
//
// When the present queue can run graphics work, or when there are wait
// semaphores to chain on, a single submission on the target queue suffices.
// A present on a non-graphics queue with no waits needs two: an empty
// submission on the present queue whose signal establishes ordering against
// the in-flight frame, and the real submission on the graphics queue waiting
// on that signal.
func (l *Layer) submitOverlay(
	dev *DeviceState,
	slot *frameSlot,
	queue, injectionQueue vulkan.VkQueue,
	supportsGraphics bool,
	waits []vulkan.VkSemaphore) vulkan.VkResult {

	fns := &dev.frames.fns

	if supportsGraphics || len(waits) > 0 {
		target := queue
		if !supportsGraphics {
			target = injectionQueue
		}
		stages := make([]vulkan.VkPipelineStageFlags, len(waits))
		for i := range stages {
			stages[i] = vulkan.VkPipelineStageFlagBits_VK_PIPELINE_STAGE_FRAGMENT_SHADER_BIT
		}
		submit := vulkan.VkSubmitInfo{
			WaitSemaphores:   waits,
			WaitDstStageMask: stages,
			CommandBuffers:   []vulkan.VkCommandBuffer{slot.buffer},
			SignalSemaphores: []vulkan.VkSemaphore{slot.renderDone},
		}
		return fns.queueSubmit(target, []vulkan.VkSubmitInfo{submit}, slot.fence)
	}

	empty := vulkan.VkSubmitInfo{
		SignalSemaphores: []vulkan.VkSemaphore{slot.ordering},
	}
	if r := fns.queueSubmit(queue, []vulkan.VkSubmitInfo{empty}, 0); r != vulkan.VkResult_VK_SUCCESS {
		return r
	}
	real := vulkan.VkSubmitInfo{
		WaitSemaphores:   []vulkan.VkSemaphore{slot.ordering},
		WaitDstStageMask: []vulkan.VkPipelineStageFlags{vulkan.VkPipelineStageFlagBits_VK_PIPELINE_STAGE_ALL_COMMANDS_BIT},
		CommandBuffers:   []vulkan.VkCommandBuffer{slot.buffer},
		SignalSemaphores: []vulkan.VkSemaphore{slot.renderDone},
	}
	return fns.queueSubmit(injectionQueue, []vulkan.VkSubmitInfo{real}, slot.fence)
}

// record waits for the slot's previous use, then re-records its command
// buffer: the shared render pass over the slot's framebuffer with the
// renderer's commands inside. A renderer error leaves an empty pass, which
// still performs the layout round trip the forwarded present relies on.
func (f *frameResources) record(
	ctx context.Context,
	renderer overlay.Renderer,
	dev *DeviceState,
	slot *frameSlot,
	injectionQueue vulkan.VkQueue) vulkan.VkResult {

	if r := f.fns.waitForFences(f.device, []vulkan.VkFence{slot.fence}, true, fenceWaitTimeout); r != vulkan.VkResult_VK_SUCCESS {
		return r
	}
	if r := f.fns.resetFences(f.device, []vulkan.VkFence{slot.fence}); r != vulkan.VkResult_VK_SUCCESS {
		return r
	}
	if r := f.fns.resetCommandBuffer(slot.buffer, 0); r != vulkan.VkResult_VK_SUCCESS {
		return r
	}
	begin := vulkan.VkCommandBufferBeginInfo{
		Flags: vulkan.VkCommandBufferUsageFlagBits_VK_COMMAND_BUFFER_USAGE_ONE_TIME_SUBMIT_BIT,
	}
	if r := f.fns.beginCommandBuffer(slot.buffer, &begin); r != vulkan.VkResult_VK_SUCCESS {
		return r
	}

	extent := f.renderExtent()
	passBegin := vulkan.VkRenderPassBeginInfo{
		RenderPass:  f.renderPass,
		Framebuffer: slot.framebuffer,
		RenderArea:  vulkan.VkRect2D{Extent: extent},
	}
	f.fns.cmdBeginRenderPass(slot.buffer, &passBegin, vulkan.VkSubpassContents_VK_SUBPASS_CONTENTS_INLINE)

	var instance vulkan.VkInstance
	if dev.Instance != nil {
		instance = dev.Instance.Instance
	}
	fc := overlay.FrameContext{
		Instance:       instance,
		PhysicalDevice: dev.PhysicalDevice,
		Device:         f.device,
		QueueFamily:    f.queueFamily,
		Queue:          injectionQueue,
		PipelineCache:  f.pipelineCache,
		DescriptorPool: f.descriptorPool,
		RenderPass:     f.renderPass,
		Subpass:        0,
		ImageCount:     f.imageCount,
		CommandBuffer:  slot.buffer,
		Extent:         extent,
	}
	if err := renderer.Render(ctx, fc); err != nil {
		log.W(ctx, "overlay renderer: %v", err)
	}

	f.fns.cmdEndRenderPass(slot.buffer)
	return f.fns.endCommandBuffer(slot.buffer)
}
