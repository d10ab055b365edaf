// Package batch feeds large id sets into a list in fixed-size chunks.
//
// Loading tens of thousands of rows in one call forces a single large
// layout pass. Feeding them in batches keeps each BatchAdd small, lets the
// caller refresh between chunks, and gives a place to observe progress and
// honour cancellation.
package batch
