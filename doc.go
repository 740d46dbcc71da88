// Package bp3d implements a deterministic heuristic 3D bin-packing engine.
//
// Callers register one or more Bins and a pool of Items with a Packer,
// then call Pack. The packer orders bins and items, derives candidate
// placement pivots from items already committed to a bin, and asks each
// Bin to try every allowed rotation of an item at a pivot until one
// fits. Fitting accounts for bin boundaries, 3D overlap, weight caps,
// an optional gravity-assisted pivot relaxation, a non-stackable
// adjacency rule, and an optional stability check. After a bin is
// packed, Pack computes a four-quadrant center-of-gravity report for
// it.
//
// The package has no I/O, no concurrency, and no optimality guarantee:
// it is a heuristic, not a solver, and two calls with identical inputs
// always produce identical output.
package bp3d
