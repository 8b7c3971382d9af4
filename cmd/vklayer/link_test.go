// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"
	"unsafe"
)

func fakeProc(id int) unsafe.Pointer {
	// Any distinguishable non-nil pointer value; the functions under test
	// never call through it, only compare/return it.
	v := new(int)
	*v = id
	return unsafe.Pointer(v)
}

func TestNextInstanceProcAddr_FindsAndAdvancesLink(t *testing.T) {
	below := &instanceLink{next: nil, pfnNextGetInstanceProcAddr: fakeProc(2)}
	top := &instanceLink{next: below, pfnNextGetInstanceProcAddr: fakeProc(1)}

	node := &layerFunctionNode{
		chainHeader: chainHeader{sType: structureTypeLoaderInstanceCreateInfo},
		function:    layerFunctionLinkInfo,
		union:       unsafe.Pointer(top),
	}

	proc := nextInstanceProcAddr(unsafe.Pointer(node))
	if proc != top.pfnNextGetInstanceProcAddr {
		t.Fatalf("expected top link's proc addr, got %p want %p", proc, top.pfnNextGetInstanceProcAddr)
	}

	// The node must now point at the next link down the chain so a second
	// layer performing the same walk over the same pNext sees "below", not
	// "top" again.
	if node.union != unsafe.Pointer(below) {
		t.Fatalf("expected union advanced to below link, got %p want %p", node.union, unsafe.Pointer(below))
	}
}

func TestNextInstanceProcAddr_SkipsUnrelatedNodes(t *testing.T) {
	link := &instanceLink{pfnNextGetInstanceProcAddr: fakeProc(9)}
	linkNode := &layerFunctionNode{
		chainHeader: chainHeader{sType: structureTypeLoaderInstanceCreateInfo},
		function:    layerFunctionLinkInfo,
		union:       unsafe.Pointer(link),
	}
	unrelated := &chainHeader{sType: 999, pNext: unsafe.Pointer(linkNode)}

	proc := nextInstanceProcAddr(unsafe.Pointer(unrelated))
	if proc != link.pfnNextGetInstanceProcAddr {
		t.Fatalf("expected to find link past the unrelated node, got %p", proc)
	}
}

func TestNextInstanceProcAddr_EmptyChainReturnsNil(t *testing.T) {
	if proc := nextInstanceProcAddr(nil); proc != nil {
		t.Fatalf("expected nil for an empty chain, got %p", proc)
	}
}

func TestNextDeviceProcAddrs_FindsBothFunctions(t *testing.T) {
	link := &deviceLink{
		pfnNextGetInstanceProcAddr: fakeProc(3),
		pfnNextGetDeviceProcAddr:   fakeProc(4),
	}
	node := &layerFunctionNode{
		chainHeader: chainHeader{sType: structureTypeLoaderDeviceCreateInfo},
		function:    layerFunctionLinkInfo,
		union:       unsafe.Pointer(link),
	}

	gipa, gdpa := nextDeviceProcAddrs(unsafe.Pointer(node))
	if gipa != link.pfnNextGetInstanceProcAddr || gdpa != link.pfnNextGetDeviceProcAddr {
		t.Fatalf("unexpected proc addrs: gipa=%p gdpa=%p", gipa, gdpa)
	}
	if node.union != nil {
		t.Fatalf("expected union advanced to nil (no further link), got %p", node.union)
	}
}
