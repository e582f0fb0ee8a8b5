package vision

import "image"

// CoordCache memoizes the last known-good icon center so repeated launches
// can skip the full-screen matching pass.
//
// It is a single slot with at-most-one value: successful matches overwrite
// it, a verified launch failure clears it. The cache is owned by the one
// control-flow thread driving the workflow and is deliberately not
// synchronized; introduce a mutex before sharing it across goroutines.
type CoordCache struct {
	pt  image.Point
	set bool
}

// NewCoordCache returns an empty cache.
func NewCoordCache() *CoordCache {
	return &CoordCache{}
}

// Get returns the cached coordinate, if any.
func (c *CoordCache) Get() (image.Point, bool) {
	return c.pt, c.set
}

// Set stores pt as the last known-good icon center.
func (c *CoordCache) Set(pt image.Point) {
	c.pt = pt
	c.set = true
}

// Invalidate clears the slot.
func (c *CoordCache) Invalidate() {
	c.pt = image.Point{}
	c.set = false
}
