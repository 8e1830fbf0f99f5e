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

package vulkan

import "fmt"

// VkResult is the return code of most Vulkan entry points.
type VkResult int32

const (
	VkResult_VK_SUCCESS                       VkResult = 0
	VkResult_VK_NOT_READY                     VkResult = 1
	VkResult_VK_TIMEOUT                       VkResult = 2
	VkResult_VK_INCOMPLETE                    VkResult = 5
	VkResult_VK_ERROR_OUT_OF_HOST_MEMORY      VkResult = -1
	VkResult_VK_ERROR_OUT_OF_DEVICE_MEMORY    VkResult = -2
	VkResult_VK_ERROR_INITIALIZATION_FAILED   VkResult = -3
	VkResult_VK_ERROR_DEVICE_LOST             VkResult = -4
	VkResult_VK_ERROR_OUT_OF_DATE_KHR         VkResult = -1000001004
	VkResult_VK_ERROR_VALIDATION_FAILED_EXT   VkResult = -1000011001
	VkResult_VK_ERROR_INCOMPATIBLE_DRIVER     VkResult = -9
	VkResult_VK_ERROR_FEATURE_NOT_PRESENT     VkResult = -8
	VkResult_VK_ERROR_EXTENSION_NOT_PRESENT   VkResult = -7
	VkResult_VK_ERROR_LAYER_NOT_PRESENT       VkResult = -6
	VkResult_VK_ERROR_MEMORY_MAP_FAILED       VkResult = -5
	VkResult_VK_SUBOPTIMAL_KHR                VkResult = 1000001003
	VkResult_VK_ERROR_NATIVE_WINDOW_IN_USE    VkResult = -1000000001
	VkResult_VK_ERROR_SURFACE_LOST_KHR        VkResult = -1000000000
	VkResult_VK_ERROR_FORMAT_NOT_SUPPORTED    VkResult = -11
	VkResult_VK_ERROR_TOO_MANY_OBJECTS        VkResult = -10
	VkResult_VK_ERROR_FRAGMENTED_POOL         VkResult = -12
	VkResult_VK_ERROR_OUT_OF_POOL_MEMORY      VkResult = -1000069000
	VkResult_VK_ERROR_INVALID_EXTERNAL_HANDLE VkResult = -1000072003
)

func (r VkResult) String() string {
	switch r {
	case VkResult_VK_SUCCESS:
		return "VK_SUCCESS"
	case VkResult_VK_NOT_READY:
		return "VK_NOT_READY"
	case VkResult_VK_TIMEOUT:
		return "VK_TIMEOUT"
	case VkResult_VK_INCOMPLETE:
		return "VK_INCOMPLETE"
	case VkResult_VK_ERROR_OUT_OF_HOST_MEMORY:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case VkResult_VK_ERROR_OUT_OF_DEVICE_MEMORY:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case VkResult_VK_ERROR_INITIALIZATION_FAILED:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case VkResult_VK_ERROR_DEVICE_LOST:
		return "VK_ERROR_DEVICE_LOST"
	case VkResult_VK_ERROR_OUT_OF_DATE_KHR:
		return "VK_ERROR_OUT_OF_DATE_KHR"
	case VkResult_VK_SUBOPTIMAL_KHR:
		return "VK_SUBOPTIMAL_KHR"
	case VkResult_VK_ERROR_SURFACE_LOST_KHR:
		return "VK_ERROR_SURFACE_LOST_KHR"
	default:
		return fmt.Sprintf("VkResult(%d)", int32(r))
	}
}

// VkStructureType identifies the type of a structure in a pNext chain.
type VkStructureType uint32

const (
	VkStructureType_VK_STRUCTURE_TYPE_LOADER_INSTANCE_CREATE_INFO VkStructureType = 47
	VkStructureType_VK_STRUCTURE_TYPE_LOADER_DEVICE_CREATE_INFO   VkStructureType = 48
)

// VkQueueFlags is a bitmask of VkQueueFlagBits.
type VkQueueFlags uint32

const (
	VkQueueFlagBits_VK_QUEUE_GRAPHICS_BIT       VkQueueFlags = 0x1
	VkQueueFlagBits_VK_QUEUE_COMPUTE_BIT        VkQueueFlags = 0x2
	VkQueueFlagBits_VK_QUEUE_TRANSFER_BIT       VkQueueFlags = 0x4
	VkQueueFlagBits_VK_QUEUE_SPARSE_BINDING_BIT VkQueueFlags = 0x8
)

// VkFormat is the pixel format of an image.
type VkFormat uint32

const (
	VkFormat_VK_FORMAT_B8G8R8A8_UNORM VkFormat = 44
	VkFormat_VK_FORMAT_R8G8B8A8_UNORM VkFormat = 37
)

// VkImageLayout is the layout of an image subresource.
type VkImageLayout uint32

const (
	VkImageLayout_VK_IMAGE_LAYOUT_UNDEFINED                VkImageLayout = 0
	VkImageLayout_VK_IMAGE_LAYOUT_COLOR_ATTACHMENT_OPTIMAL VkImageLayout = 2
	VkImageLayout_VK_IMAGE_LAYOUT_PRESENT_SRC_KHR          VkImageLayout = 1000001002
)

// VkAttachmentLoadOp specifies how attachment contents are treated at the
// beginning of a subpass.
type VkAttachmentLoadOp uint32

const (
	VkAttachmentLoadOp_VK_ATTACHMENT_LOAD_OP_LOAD      VkAttachmentLoadOp = 0
	VkAttachmentLoadOp_VK_ATTACHMENT_LOAD_OP_CLEAR     VkAttachmentLoadOp = 1
	VkAttachmentLoadOp_VK_ATTACHMENT_LOAD_OP_DONT_CARE VkAttachmentLoadOp = 2
)

// VkAttachmentStoreOp specifies how attachment contents are treated at the
// end of a subpass.
type VkAttachmentStoreOp uint32

const (
	VkAttachmentStoreOp_VK_ATTACHMENT_STORE_OP_STORE     VkAttachmentStoreOp = 0
	VkAttachmentStoreOp_VK_ATTACHMENT_STORE_OP_DONT_CARE VkAttachmentStoreOp = 1
)

// VkSampleCountFlags is a bitmask of sample counts.
type VkSampleCountFlags uint32

const VkSampleCountFlagBits_VK_SAMPLE_COUNT_1_BIT VkSampleCountFlags = 0x1

// VkPipelineBindPoint specifies the type of pipeline bound to a bind point.
type VkPipelineBindPoint uint32

const (
	VkPipelineBindPoint_VK_PIPELINE_BIND_POINT_GRAPHICS VkPipelineBindPoint = 0
	VkPipelineBindPoint_VK_PIPELINE_BIND_POINT_COMPUTE  VkPipelineBindPoint = 1
)

// VkPipelineStageFlags is a bitmask of pipeline stages.
type VkPipelineStageFlags uint32

const (
	VkPipelineStageFlagBits_VK_PIPELINE_STAGE_FRAGMENT_SHADER_BIT VkPipelineStageFlags = 0x00000080
	VkPipelineStageFlagBits_VK_PIPELINE_STAGE_ALL_COMMANDS_BIT    VkPipelineStageFlags = 0x00010000
)

// VkCommandPoolCreateFlags is a bitmask of command pool creation options.
type VkCommandPoolCreateFlags uint32

const VkCommandPoolCreateFlagBits_VK_COMMAND_POOL_CREATE_RESET_COMMAND_BUFFER_BIT VkCommandPoolCreateFlags = 0x2

// VkCommandBufferLevel specifies a command buffer level.
type VkCommandBufferLevel uint32

const (
	VkCommandBufferLevel_VK_COMMAND_BUFFER_LEVEL_PRIMARY   VkCommandBufferLevel = 0
	VkCommandBufferLevel_VK_COMMAND_BUFFER_LEVEL_SECONDARY VkCommandBufferLevel = 1
)

// VkCommandBufferUsageFlags is a bitmask of command buffer usage options.
type VkCommandBufferUsageFlags uint32

const VkCommandBufferUsageFlagBits_VK_COMMAND_BUFFER_USAGE_ONE_TIME_SUBMIT_BIT VkCommandBufferUsageFlags = 0x1

// VkFenceCreateFlags is a bitmask of fence creation options.
type VkFenceCreateFlags uint32

const VkFenceCreateFlagBits_VK_FENCE_CREATE_SIGNALED_BIT VkFenceCreateFlags = 0x1

// VkDescriptorType specifies the type of a descriptor.
type VkDescriptorType uint32

const (
	VkDescriptorType_VK_DESCRIPTOR_TYPE_SAMPLER                VkDescriptorType = 0
	VkDescriptorType_VK_DESCRIPTOR_TYPE_COMBINED_IMAGE_SAMPLER VkDescriptorType = 1
	VkDescriptorType_VK_DESCRIPTOR_TYPE_SAMPLED_IMAGE          VkDescriptorType = 2
	VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_IMAGE          VkDescriptorType = 3
	VkDescriptorType_VK_DESCRIPTOR_TYPE_UNIFORM_TEXEL_BUFFER   VkDescriptorType = 4
	VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_TEXEL_BUFFER   VkDescriptorType = 5
	VkDescriptorType_VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER         VkDescriptorType = 6
	VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_BUFFER         VkDescriptorType = 7
	VkDescriptorType_VK_DESCRIPTOR_TYPE_UNIFORM_BUFFER_DYNAMIC VkDescriptorType = 8
	VkDescriptorType_VK_DESCRIPTOR_TYPE_STORAGE_BUFFER_DYNAMIC VkDescriptorType = 9
	VkDescriptorType_VK_DESCRIPTOR_TYPE_INPUT_ATTACHMENT       VkDescriptorType = 10
)

// VkDescriptorPoolCreateFlags is a bitmask of descriptor pool creation
// options.
type VkDescriptorPoolCreateFlags uint32

const VkDescriptorPoolCreateFlagBits_VK_DESCRIPTOR_POOL_CREATE_FREE_DESCRIPTOR_SET_BIT VkDescriptorPoolCreateFlags = 0x1

// VkImageViewType specifies the type of an image view.
type VkImageViewType uint32

const VkImageViewType_VK_IMAGE_VIEW_TYPE_2D VkImageViewType = 1

// VkImageAspectFlags is a bitmask of image aspects.
type VkImageAspectFlags uint32

const VkImageAspectFlagBits_VK_IMAGE_ASPECT_COLOR_BIT VkImageAspectFlags = 0x1

// VkSubpassContents specifies how subpass commands are provided.
type VkSubpassContents uint32

const VkSubpassContents_VK_SUBPASS_CONTENTS_INLINE VkSubpassContents = 0

// VkPhysicalDeviceType classifies a physical device.
type VkPhysicalDeviceType uint32

const (
	VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_OTHER          VkPhysicalDeviceType = 0
	VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU VkPhysicalDeviceType = 1
	VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU   VkPhysicalDeviceType = 2
	VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU    VkPhysicalDeviceType = 3
	VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_CPU            VkPhysicalDeviceType = 4
)

func (t VkPhysicalDeviceType) String() string {
	switch t {
	case VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_INTEGRATED_GPU:
		return "Integrated GPU"
	case VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU:
		return "Discrete GPU"
	case VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_VIRTUAL_GPU:
		return "Virtual GPU"
	case VkPhysicalDeviceType_VK_PHYSICAL_DEVICE_TYPE_CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}
