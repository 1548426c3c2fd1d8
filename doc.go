// Copyright 2022 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pdi controls Pervasive Displays iTC monochrome e-paper panels on
// the EXT3-1 extension board.
//
// The driver keeps a full frame in memory: the raster and text primitives
// only touch the buffer, Flush runs the panel update protocol. Presets are
// provided for the 2.71 inch and 3.70 inch panels; other iTC monochrome
// panels of the same driver generation work with custom Opts.
//
// Vendor driver suite:
//
// https://github.com/rei-vilo/PDLS_EXT3_Basic_Global
//
// Product page:
//
// https://www.pervasivedisplays.com/products/
package pdi
