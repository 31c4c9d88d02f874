// SPDX-License-Identifier: MIT

// Package pareto provides spatial containers specialized for maintaining
// Pareto-optimal sets.
//
// It is organized in three layers:
//
//   - A family of multidimensional spatial indexes (Flat, KDTree, QuadTree,
//     RTree, RStarTree) that map a [Point] to an associated value and
//     support range, window and k-nearest-neighbour queries. All five
//     variants implement the same [Index] contract, so callers can swap
//     the underlying data structure without touching the rest of their
//     code.
//   - [Front], which wraps any spatial index and maintains only the
//     points that are not dominated by any other stored point, under a
//     caller-supplied per-dimension optimization direction.
//   - [Archive], which wraps a bounded sequence of nested fronts (an
//     ε-efficient stratification) and keeps the total number of stored
//     entries under a capacity.
//
// None of the three layers perform I/O, spawn goroutines or block: every
// operation completes synchronously on the calling goroutine. A single
// container must not be mutated from more than one goroutine at a time;
// concurrent reads are safe as long as no writer is active.
package pareto
