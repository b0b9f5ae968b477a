// hashcons.go: package version marker
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package hashcons

const (
	// Version of the hashcons library.
	Version = "v0.1.0-dev"
)
