// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package main

// main is never called — the loader and host application only ever
// reach this binary through its exported C symbols — but -buildmode=
// c-shared requires a package main with a main function to link.
func main() {}
