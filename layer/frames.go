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
	"time"

	"github.com/pkg/errors"

	"github.com/lexisother/ThatSkyLoader/core/log"
	"github.com/lexisother/ThatSkyLoader/vulkan"
)

const (
	// maxFrameSlots bounds the per-swapchain-image resource ring. Swapchains
	// reporting more images are tracked up to this many.
	maxFrameSlots = 8

	// fenceWaitTimeout bounds every fence wait the layer performs, in
	// nanoseconds. A hung or crashed GPU workload must never deadlock the
	// host's present thread.
	fenceWaitTimeout = uint64(time.Second)

	// descriptorsPerType sizes the shared descriptor pool, per descriptor
	// type.
	descriptorsPerType = 1000
)

// defaultRenderExtent is used before the first swapchain creation has
// reported a real extent.
var defaultRenderExtent = vulkan.VkExtent2D{Width: 3840, Height: 2160}

// errBuildFailed marks a swapchain generation whose resource build already
// failed; injection stays off until the next generation.
var errBuildFailed = errors.New("frame resources unavailable for this swapchain generation")

// deviceFuncs holds the device level entry points the frame ring drives.
// They are resolved once per device, on first use, through the next link's
// vkGetDeviceProcAddr.
type deviceFuncs struct {
	getSwapchainImages     vulkan.PFNvkGetSwapchainImagesKHR
	createCommandPool      vulkan.PFNvkCreateCommandPool
	destroyCommandPool     vulkan.PFNvkDestroyCommandPool
	allocateCommandBuffers vulkan.PFNvkAllocateCommandBuffers
	freeCommandBuffers     vulkan.PFNvkFreeCommandBuffers
	resetCommandBuffer     vulkan.PFNvkResetCommandBuffer
	beginCommandBuffer     vulkan.PFNvkBeginCommandBuffer
	endCommandBuffer       vulkan.PFNvkEndCommandBuffer
	cmdBeginRenderPass     vulkan.PFNvkCmdBeginRenderPass
	cmdEndRenderPass       vulkan.PFNvkCmdEndRenderPass
	createFence            vulkan.PFNvkCreateFence
	destroyFence           vulkan.PFNvkDestroyFence
	waitForFences          vulkan.PFNvkWaitForFences
	resetFences            vulkan.PFNvkResetFences
	createSemaphore        vulkan.PFNvkCreateSemaphore
	destroySemaphore       vulkan.PFNvkDestroySemaphore
	createRenderPass       vulkan.PFNvkCreateRenderPass
	destroyRenderPass      vulkan.PFNvkDestroyRenderPass
	createImageView        vulkan.PFNvkCreateImageView
	destroyImageView       vulkan.PFNvkDestroyImageView
	createFramebuffer      vulkan.PFNvkCreateFramebuffer
	destroyFramebuffer     vulkan.PFNvkDestroyFramebuffer
	createDescriptorPool   vulkan.PFNvkCreateDescriptorPool
	destroyDescriptorPool  vulkan.PFNvkDestroyDescriptorPool
	queueSubmit            vulkan.PFNvkQueueSubmit
}

func (f *deviceFuncs) resolve(gdpa vulkan.PFNvkGetDeviceProcAddr, device vulkan.VkDevice) error {
	if gdpa == nil {
		return errors.New("no vkGetDeviceProcAddr to resolve device entry points with")
	}
	f.getSwapchainImages, _ = gdpa(device, "vkGetSwapchainImagesKHR").(vulkan.PFNvkGetSwapchainImagesKHR)
	f.createCommandPool, _ = gdpa(device, "vkCreateCommandPool").(vulkan.PFNvkCreateCommandPool)
	f.destroyCommandPool, _ = gdpa(device, "vkDestroyCommandPool").(vulkan.PFNvkDestroyCommandPool)
	f.allocateCommandBuffers, _ = gdpa(device, "vkAllocateCommandBuffers").(vulkan.PFNvkAllocateCommandBuffers)
	f.freeCommandBuffers, _ = gdpa(device, "vkFreeCommandBuffers").(vulkan.PFNvkFreeCommandBuffers)
	f.resetCommandBuffer, _ = gdpa(device, "vkResetCommandBuffer").(vulkan.PFNvkResetCommandBuffer)
	f.beginCommandBuffer, _ = gdpa(device, "vkBeginCommandBuffer").(vulkan.PFNvkBeginCommandBuffer)
	f.endCommandBuffer, _ = gdpa(device, "vkEndCommandBuffer").(vulkan.PFNvkEndCommandBuffer)
	f.cmdBeginRenderPass, _ = gdpa(device, "vkCmdBeginRenderPass").(vulkan.PFNvkCmdBeginRenderPass)
	f.cmdEndRenderPass, _ = gdpa(device, "vkCmdEndRenderPass").(vulkan.PFNvkCmdEndRenderPass)
	f.createFence, _ = gdpa(device, "vkCreateFence").(vulkan.PFNvkCreateFence)
	f.destroyFence, _ = gdpa(device, "vkDestroyFence").(vulkan.PFNvkDestroyFence)
	f.waitForFences, _ = gdpa(device, "vkWaitForFences").(vulkan.PFNvkWaitForFences)
	f.resetFences, _ = gdpa(device, "vkResetFences").(vulkan.PFNvkResetFences)
	f.createSemaphore, _ = gdpa(device, "vkCreateSemaphore").(vulkan.PFNvkCreateSemaphore)
	f.destroySemaphore, _ = gdpa(device, "vkDestroySemaphore").(vulkan.PFNvkDestroySemaphore)
	f.createRenderPass, _ = gdpa(device, "vkCreateRenderPass").(vulkan.PFNvkCreateRenderPass)
	f.destroyRenderPass, _ = gdpa(device, "vkDestroyRenderPass").(vulkan.PFNvkDestroyRenderPass)
	f.createImageView, _ = gdpa(device, "vkCreateImageView").(vulkan.PFNvkCreateImageView)
	f.destroyImageView, _ = gdpa(device, "vkDestroyImageView").(vulkan.PFNvkDestroyImageView)
	f.createFramebuffer, _ = gdpa(device, "vkCreateFramebuffer").(vulkan.PFNvkCreateFramebuffer)
	f.destroyFramebuffer, _ = gdpa(device, "vkDestroyFramebuffer").(vulkan.PFNvkDestroyFramebuffer)
	f.createDescriptorPool, _ = gdpa(device, "vkCreateDescriptorPool").(vulkan.PFNvkCreateDescriptorPool)
	f.destroyDescriptorPool, _ = gdpa(device, "vkDestroyDescriptorPool").(vulkan.PFNvkDestroyDescriptorPool)
	f.queueSubmit, _ = gdpa(device, "vkQueueSubmit").(vulkan.PFNvkQueueSubmit)

	for _, e := range []struct {
		name string
		ok   bool
	}{
		{"vkGetSwapchainImagesKHR", f.getSwapchainImages != nil},
		{"vkCreateCommandPool", f.createCommandPool != nil},
		{"vkDestroyCommandPool", f.destroyCommandPool != nil},
		{"vkAllocateCommandBuffers", f.allocateCommandBuffers != nil},
		{"vkFreeCommandBuffers", f.freeCommandBuffers != nil},
		{"vkResetCommandBuffer", f.resetCommandBuffer != nil},
		{"vkBeginCommandBuffer", f.beginCommandBuffer != nil},
		{"vkEndCommandBuffer", f.endCommandBuffer != nil},
		{"vkCmdBeginRenderPass", f.cmdBeginRenderPass != nil},
		{"vkCmdEndRenderPass", f.cmdEndRenderPass != nil},
		{"vkCreateFence", f.createFence != nil},
		{"vkDestroyFence", f.destroyFence != nil},
		{"vkWaitForFences", f.waitForFences != nil},
		{"vkResetFences", f.resetFences != nil},
		{"vkCreateSemaphore", f.createSemaphore != nil},
		{"vkDestroySemaphore", f.destroySemaphore != nil},
		{"vkCreateRenderPass", f.createRenderPass != nil},
		{"vkDestroyRenderPass", f.destroyRenderPass != nil},
		{"vkCreateImageView", f.createImageView != nil},
		{"vkDestroyImageView", f.destroyImageView != nil},
		{"vkCreateFramebuffer", f.createFramebuffer != nil},
		{"vkDestroyFramebuffer", f.destroyFramebuffer != nil},
		{"vkCreateDescriptorPool", f.createDescriptorPool != nil},
		{"vkDestroyDescriptorPool", f.destroyDescriptorPool != nil},
		{"vkQueueSubmit", f.queueSubmit != nil},
	} {
		if !e.ok {
			return errors.Errorf("cannot resolve %s", e.name)
		}
	}
	return nil
}

// frameSlot carries the per-image resources of the ring.
type frameSlot struct {
	backbuffer  vulkan.VkImage // borrowed from the swapchain, never destroyed here
	view        vulkan.VkImageView
	framebuffer vulkan.VkFramebuffer
	pool        vulkan.VkCommandPool
	buffer      vulkan.VkCommandBuffer
	fence       vulkan.VkFence     // created signaled; guards buffer reuse
	ordering    vulkan.VkSemaphore // signaled by the placeholder submission on the present queue
	renderDone  vulkan.VkSemaphore // signaled by the injected submission, waited on by the present
}

// frameResources is the per-device resource ring backing overlay injection.
// Slot resources live for one swapchain generation; the render pass,
// descriptor pool and pipeline cache persist across generations and are
// destroyed only at device teardown. All access happens on the present and
// destroy paths, which the application must already externally synchronize
// per the threading rules of the presentation API.
type frameResources struct {
	device vulkan.VkDevice

	fns      deviceFuncs
	resolved bool

	built      bool
	buildFail  bool // a build this generation already failed; do not retry
	imageCount uint32
	slots      [maxFrameSlots]frameSlot

	renderPass     vulkan.VkRenderPass
	descriptorPool vulkan.VkDescriptorPool
	pipelineCache  vulkan.VkPipelineCache

	extent      vulkan.VkExtent2D // last swapchain extent seen; zero until then
	queueFamily uint32
}

func newFrameResources(device vulkan.VkDevice) *frameResources {
	return &frameResources{device: device}
}

// setExtent records the extent of a newly created swapchain.
func (f *frameResources) setExtent(e vulkan.VkExtent2D) {
	f.extent = e
}

// renderExtent returns the extent injected rendering targets.
func (f *frameResources) renderExtent() vulkan.VkExtent2D {
	if f.extent.Width == 0 || f.extent.Height == 0 {
		return defaultRenderExtent
	}
	return f.extent
}

// ensureBuilt builds the ring for the current swapchain generation if it is
// not already built. A failed build disables injection until the next
// generation rather than being retried every frame.
func (f *frameResources) ensureBuilt(ctx context.Context, dev *DeviceState, swapchain vulkan.VkSwapchainKHR) error {
	if f.built {
		return nil
	}
	if f.buildFail {
		return errBuildFailed
	}
	if err := f.build(ctx, dev, swapchain); err != nil {
		// Creation may have stopped partway; release whatever was made.
		f.invalidate(ctx)
		f.buildFail = true
		return err
	}
	return nil
}

func (f *frameResources) build(ctx context.Context, dev *DeviceState, swapchain vulkan.VkSwapchainKHR) error {
	if !f.resolved {
		if err := f.fns.resolve(dev.Table.GetDeviceProcAddr, f.device); err != nil {
			return errors.Wrap(err, "resolving device entry points")
		}
		f.resolved = true
	}
	if dev.Primary == nil {
		return errors.New("device has no queues to build frame resources for")
	}
	f.queueFamily = dev.Primary.FamilyIndex

	var count uint32
	if r := f.fns.getSwapchainImages(f.device, swapchain, &count, nil); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("querying swapchain image count: %v", r)
	}
	if count == 0 {
		return errors.New("swapchain reports no images")
	}
	if count > maxFrameSlots {
		log.W(ctx, "%v: %d reported, tracking %d", ErrTooManyImages, count, maxFrameSlots)
		count = maxFrameSlots
	}
	images := make([]vulkan.VkImage, count)
	// VK_INCOMPLETE just means the driver had more images than we asked for.
	if r := f.fns.getSwapchainImages(f.device, swapchain, &count, images); r != vulkan.VkResult_VK_SUCCESS && r != vulkan.VkResult_VK_INCOMPLETE {
		return errors.Errorf("fetching swapchain images: %v", r)
	}
	// The driver writes the full count back on the second query too.
	if count > uint32(len(images)) {
		count = uint32(len(images))
	}

	if f.renderPass == 0 {
		if err := f.buildRenderPass(); err != nil {
			return err
		}
	}
	if f.descriptorPool == 0 {
		if err := f.buildDescriptorPool(); err != nil {
			return err
		}
	}

	extent := f.renderExtent()
	for i := uint32(0); i < count; i++ {
		if err := f.buildSlot(&f.slots[i], images[i], extent); err != nil {
			return errors.Wrapf(err, "building frame slot %d", i)
		}
	}

	f.imageCount = count
	f.built = true
	log.D(ctx, "built %d frame slots at %dx%d", count, extent.Width, extent.Height)
	return nil
}

func (f *frameResources) buildRenderPass() error {
	attachment := vulkan.VkAttachmentDescription{
		Format:         vulkan.VkFormat_VK_FORMAT_B8G8R8A8_UNORM,
		Samples:        vulkan.VkSampleCountFlagBits_VK_SAMPLE_COUNT_1_BIT,
		LoadOp:         vulkan.VkAttachmentLoadOp_VK_ATTACHMENT_LOAD_OP_DONT_CARE,
		StoreOp:        vulkan.VkAttachmentStoreOp_VK_ATTACHMENT_STORE_OP_STORE,
		StencilLoadOp:  vulkan.VkAttachmentLoadOp_VK_ATTACHMENT_LOAD_OP_DONT_CARE,
		StencilStoreOp: vulkan.VkAttachmentStoreOp_VK_ATTACHMENT_STORE_OP_DONT_CARE,
		// The application already transitioned the image for presentation;
		// the injected pass must hand it back the same way.
		InitialLayout: vulkan.VkImageLayout_VK_IMAGE_LAYOUT_PRESENT_SRC_KHR,
		FinalLayout:   vulkan.VkImageLayout_VK_IMAGE_LAYOUT_PRESENT_SRC_KHR,
	}
	subpass := vulkan.VkSubpassDescription{
		PipelineBindPoint: vulkan.VkPipelineBindPoint_VK_PIPELINE_BIND_POINT_GRAPHICS,
		ColorAttachments: []vulkan.VkAttachmentReference{{
			Attachment: 0,
			Layout:     vulkan.VkImageLayout_VK_IMAGE_LAYOUT_COLOR_ATTACHMENT_OPTIMAL,
		}},
	}
	info := vulkan.VkRenderPassCreateInfo{
		Attachments: []vulkan.VkAttachmentDescription{attachment},
		Subpasses:   []vulkan.VkSubpassDescription{subpass},
	}
	if r := f.fns.createRenderPass(f.device, &info, nil, &f.renderPass); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating render pass: %v", r)
	}
	return nil
}

func (f *frameResources) buildDescriptorPool() error {
	types := []vulkan.VkDescriptorType{
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_SAMPLER,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_COMBINED_IMAGE_SAMPLER,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_SAMPLED_IMAGE,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_IMAGE,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_UNIFORM_TEXEL_BUFFER,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_TEXEL_BUFFER,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_BUFFER,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER_DYNAMIC,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_BUFFER_DYNAMIC,
		vulkan.VkDescriptorType_VK_DESCRIPTOR_TYPE_INPUT_ATTACHMENT,
	}
	sizes := make([]vulkan.VkDescriptorPoolSize, len(types))
	for i, t := range types {
		sizes[i] = vulkan.VkDescriptorPoolSize{Type: t, DescriptorCount: descriptorsPerType}
	}
	info := vulkan.VkDescriptorPoolCreateInfo{
		Flags:     vulkan.VkDescriptorPoolCreateFlagBits_VK_DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT,
		MaxSets:   descriptorsPerType * uint32(len(types)),
		PoolSizes: sizes,
	}
	if r := f.fns.createDescriptorPool(f.device, &info, nil, &f.descriptorPool); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating descriptor pool: %v", r)
	}
	return nil
}

func (f *frameResources) buildSlot(slot *frameSlot, image vulkan.VkImage, extent vulkan.VkExtent2D) error {
	slot.backbuffer = image

	poolInfo := vulkan.VkCommandPoolCreateInfo{
		Flags:            vulkan.VkCommandPoolCreateFlagBits_VK_COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT,
		QueueFamilyIndex: f.queueFamily,
	}
	if r := f.fns.createCommandPool(f.device, &poolInfo, nil, &slot.pool); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating command pool: %v", r)
	}

	buffers := make([]vulkan.VkCommandBuffer, 1)
	allocInfo := vulkan.VkCommandBufferAllocateInfo{
		CommandPool:        slot.pool,
		Level:              vulkan.VkCommandBufferLevel_VK_COMMAND_BUFFER_LEVEL_PRIMARY,
		CommandBufferCount: 1,
	}
	if r := f.fns.allocateCommandBuffers(f.device, &allocInfo, buffers); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("allocating command buffer: %v", r)
	}
	slot.buffer = buffers[0]

	// Signaled so the first frame's wait passes immediately.
	fenceInfo := vulkan.VkFenceCreateInfo{Flags: vulkan.VkFenceCreateFlagBits_VK_FENCE_CREATE_SIGNALED_BIT}
	if r := f.fns.createFence(f.device, &fenceInfo, nil, &slot.fence); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating fence: %v", r)
	}

	semInfo := vulkan.VkSemaphoreCreateInfo{}
	if r := f.fns.createSemaphore(f.device, &semInfo, nil, &slot.ordering); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating ordering semaphore: %v", r)
	}
	if r := f.fns.createSemaphore(f.device, &semInfo, nil, &slot.renderDone); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating render semaphore: %v", r)
	}

	viewInfo := vulkan.VkImageViewCreateInfo{
		Image:    image,
		ViewType: vulkan.VkImageViewType_VK_IMAGE_VIEW_TYPE_2D,
		Format:   vulkan.VkFormat_VK_FORMAT_B8G8R8A8_UNORM,
		SubresourceRange: vulkan.VkImageSubresourceRange{
			AspectMask: vulkan.VkImageAspectFlagBits_VK_IMAGE_ASPECT_COLOR_BIT,
			LevelCount: 1,
			LayerCount: 1,
		},
	}
	if r := f.fns.createImageView(f.device, &viewInfo, nil, &slot.view); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating image view: %v", r)
	}

	fbInfo := vulkan.VkFramebufferCreateInfo{
		RenderPass:  f.renderPass,
		Attachments: []vulkan.VkImageView{slot.view},
		Width:       extent.Width,
		Height:      extent.Height,
		Layers:      1,
	}
	if r := f.fns.createFramebuffer(f.device, &fbInfo, nil, &slot.framebuffer); r != vulkan.VkResult_VK_SUCCESS {
		return errors.Errorf("creating framebuffer: %v", r)
	}
	return nil
}

// invalidate drains and destroys all slot resources, keeping the shared
// render pass and descriptor pool. Called when a swapchain is recreated and
// at teardown. Pending GPU work referencing a slot is waited for, bounded,
// before the slot is destroyed.
func (f *frameResources) invalidate(ctx context.Context) {
	if !f.resolved {
		return
	}
	for i := range f.slots {
		slot := &f.slots[i]
		if slot.fence != 0 {
			if r := f.fns.waitForFences(f.device, []vulkan.VkFence{slot.fence}, true, fenceWaitTimeout); r != vulkan.VkResult_VK_SUCCESS {
				log.W(ctx, "draining frame slot %d: fence wait returned %v", i, r)
			}
			f.fns.destroyFence(f.device, slot.fence, nil)
		}
		if slot.buffer != 0 {
			f.fns.freeCommandBuffers(f.device, slot.pool, []vulkan.VkCommandBuffer{slot.buffer})
		}
		if slot.pool != 0 {
			f.fns.destroyCommandPool(f.device, slot.pool, nil)
		}
		if slot.framebuffer != 0 {
			f.fns.destroyFramebuffer(f.device, slot.framebuffer, nil)
		}
		if slot.view != 0 {
			f.fns.destroyImageView(f.device, slot.view, nil)
		}
		if slot.ordering != 0 {
			f.fns.destroySemaphore(f.device, slot.ordering, nil)
		}
		if slot.renderDone != 0 {
			f.fns.destroySemaphore(f.device, slot.renderDone, nil)
		}
		*slot = frameSlot{}
	}
	f.built = false
	f.buildFail = false
	f.imageCount = 0
}

// teardown releases everything, including the resources that survive
// swapchain recreation. Only safe once no more presents can arrive, which
// vkDestroyDevice guarantees.
func (f *frameResources) teardown(ctx context.Context) {
	f.invalidate(ctx)
	if !f.resolved {
		return
	}
	if f.renderPass != 0 {
		f.fns.destroyRenderPass(f.device, f.renderPass, nil)
		f.renderPass = 0
	}
	if f.descriptorPool != 0 {
		f.fns.destroyDescriptorPool(f.device, f.descriptorPool, nil)
		f.descriptorPool = 0
	}
}
