// Package geom defines the small value types shared by the raster algorithms.
//
// # Coordinate System
//
// All coordinates are 0-based pixel positions with the origin at the top-left
// corner of a raster: X increases rightward and Y increases downward.
//
// A Rect is anchored at its top-left pixel and its W and H fields count pixels,
// so a Rect covers columns X..X+W-1 and rows Y..Y+H-1. A Rect with W == 0 or
// H == 0 covers no pixels at all.
//
// All types are plain values. Nothing in this package allocates or retains
// raster memory.
package geom
