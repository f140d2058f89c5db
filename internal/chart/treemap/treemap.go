// Package treemap lays out and renders the asset-allocation treemap: a
// space-filling chart where rectangle area is proportional to category
// value.
//
// The layout is a greedy slice-and-dice, not a squarified treemap:
// under highly skewed weights the rectangles' aspect ratios can become
// extreme. This is a known, accepted limitation of the algorithm, kept
// deliberately.
package treemap

import (
	"math"
	"sort"
)

// Item is one weighted entry of the treemap.
type Item struct {
	Label string
	Value float64
	Color string
}

// Rect is an axis-aligned rectangle in integer pixel coordinates.
type Rect struct {
	X, Y, W, H int
}

// Area returns the rectangle's area in square pixels.
func (r Rect) Area() int {
	return r.W * r.H
}

// Placement assigns an item its laid-out rectangle.
type Placement struct {
	Rect Rect
	Item Item
}

// Layout partitions bounds proportionally to the items' values,
// producing non-overlapping rectangles that tile bounds exactly
// Logic:
//  1. Sort items descending by value
//  2. Recursively: a single remaining item takes the whole remaining
//     rectangle. Otherwise split along the longer axis: the first item
//     gets a slice of floor(extent * value / remaining total) pixels
//     and the rest recurse into what is left, so the final item absorbs
//     all rounding error
//
// Zero items or a non-positive total weight produce no placements.
func Layout(items []Item, bounds Rect) []Placement {
	if len(items) == 0 {
		return nil
	}

	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	if total <= 0 {
		return nil
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value > sorted[j].Value
	})

	placements := make([]Placement, 0, len(sorted))
	slice(sorted, bounds, total, &placements)
	return placements
}

// slice peels the first item off and recurses on the remainder.
func slice(items []Item, r Rect, total float64, out *[]Placement) {
	if len(items) == 1 {
		*out = append(*out, Placement{Rect: r, Item: items[0]})
		return
	}

	ratio := items[0].Value / total
	if r.W > r.H {
		// Wider than tall: slice off the left edge.
		w := int(math.Floor(float64(r.W) * ratio))
		*out = append(*out, Placement{Rect: Rect{r.X, r.Y, w, r.H}, Item: items[0]})
		slice(items[1:], Rect{r.X + w, r.Y, r.W - w, r.H}, total-items[0].Value, out)
	} else {
		// Taller than wide: slice off the top edge.
		h := int(math.Floor(float64(r.H) * ratio))
		*out = append(*out, Placement{Rect: Rect{r.X, r.Y, r.W, h}, Item: items[0]})
		slice(items[1:], Rect{r.X, r.Y + h, r.W, r.H - h}, total-items[0].Value, out)
	}
}
