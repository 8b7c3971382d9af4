// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package objects

import "github.com/vklens/vklens/internal/vk"

// Sampler shadows a VkSampler.
type Sampler struct {
	Handle

	Raw vk.Sampler
}

// ShaderModule shadows a VkShaderModule. Code is kept only long enough
// for introspection to read entry points and bindings from it; the
// layer does not parse SPIR-V itself (spec.md §1 Non-goals) — reflection
// is an external collaborator reached through a narrow interface the
// overlay calls into, not implemented here.
type ShaderModule struct {
	Handle

	Raw  vk.ShaderModule
	Code []uint32
}
