package framegraph

import vk "github.com/vulkan-go/vulkan"

// These aliases keep the Linker's barrier rules (spec §4.3) readable
// without a vk.-qualifier on every flag; they name exactly the
// VkAccessFlagBits/VkPipelineStageFlagBits/VkImageLayout values the
// spec's prose refers to.
const (
	accessNone                     = 0
	colorAttachmentRead            = vk.AccessFlags(vk.AccessColorAttachmentReadBit)
	colorAttachmentWrite           = vk.AccessFlags(vk.AccessColorAttachmentWriteBit)
	depthStencilAttachmentRead     = vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit)
	depthStencilAttachmentWrite    = vk.AccessFlags(vk.AccessDepthStencilAttachmentWriteBit)
	shaderRead                     = vk.AccessFlags(vk.AccessShaderReadBit)
	shaderWrite                    = vk.AccessFlags(vk.AccessShaderWriteBit)
	transferRead                   = vk.AccessFlags(vk.AccessTransferReadBit)
	transferWrite                  = vk.AccessFlags(vk.AccessTransferWriteBit)
	hostWrite                      = vk.AccessFlags(vk.AccessHostWriteBit)
	memoryWrite                    = vk.AccessFlags(vk.AccessMemoryWriteBit)
	uniformRead                    = vk.AccessFlags(vk.AccessUniformReadBit)
	indexRead                      = vk.AccessFlags(vk.AccessIndexReadBit)
	vertexAttributeRead            = vk.AccessFlags(vk.AccessVertexAttributeReadBit)

	topOfPipe                 = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
	bottomOfPipe              = vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
	colorAttachmentOutput     = vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)
	earlyFragmentTests        = vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit)
	fragmentShader            = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)
	computeShader             = vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit)
	transferStage             = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
	hostStage                 = vk.PipelineStageFlags(vk.PipelineStageHostBit)
	vertexInput               = vk.PipelineStageFlags(vk.PipelineStageVertexInputBit)
	vertexShader              = vk.PipelineStageFlags(vk.PipelineStageVertexShaderBit)
	allCommands               = vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit)

	layoutUndefined              = vk.ImageLayout(vk.ImageLayoutUndefined)
	layoutGeneral                = vk.ImageLayout(vk.ImageLayoutGeneral)
	layoutColorAttachment        = vk.ImageLayout(vk.ImageLayoutColorAttachmentOptimal)
	layoutDepthStencilAttachment = vk.ImageLayout(vk.ImageLayoutDepthStencilAttachmentOptimal)
	layoutShaderReadOnly         = vk.ImageLayout(vk.ImageLayoutShaderReadOnlyOptimal)
	layoutTransferSrc            = vk.ImageLayout(vk.ImageLayoutTransferSrcOptimal)
	layoutTransferDst            = vk.ImageLayout(vk.ImageLayoutTransferDstOptimal)
	layoutPresentSrc             = vk.ImageLayout(vk.ImageLayoutPresentSrc)

	attachLoadClear  = vk.AttachmentLoadOp(vk.AttachmentLoadOpClear)
	attachStoreStore = vk.AttachmentStoreOp(vk.AttachmentStoreOpStore)
)

// descriptor/shader-stage/bind-point/index-format aliases used by
// the DescriptorResolver, PipelineCache and ShaderCache.
const (
	descCombinedImageSampler = vk.DescriptorType(vk.DescriptorTypeCombinedImageSampler)
	descStorageImage         = vk.DescriptorType(vk.DescriptorTypeStorageImage)
	descUniformBuffer        = vk.DescriptorType(vk.DescriptorTypeUniformBuffer)

	stageAllGraphics = vk.ShaderStageFlagBits(vk.ShaderStageAllGraphics)
	stageCompute     = vk.ShaderStageFlagBits(vk.ShaderStageComputeBit)

	bindGraphics = vk.PipelineBindPoint(vk.PipelineBindPointGraphics)
	bindCompute  = vk.PipelineBindPoint(vk.PipelineBindPointCompute)
)
