// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layout builds renderer trees from TOML or YAML descriptions.
//
// A description is a tree of nodes. Composite nodes (hsplit, vsplit, inset,
// aspect) hold children, leaf nodes (color, image, text, tilemap, null)
// draw:
//
//	background = "#202020"
//
//	[root]
//	type = "hsplit"
//	at = "30%"
//
//	  [[root.children]]
//	  type = "color"
//	  color = "cornflowerblue"
//
//	  [[root.children]]
//	  type = "aspect"
//	  aspect = 1.7777
//
//	    [[root.children.children]]
//	    type = "image"
//	    path = "photo.png"
//
// In YAML, quote the null node type (type: "null"); bare null is YAML's
// empty value.
//
// Load reads a file, Build turns a Config into a Tree of glenda renderers,
// Watcher reloads a file when it changes on disk, and Reloader feeds the
// reloaded descriptions to a window.Loop as updates.
package layout
