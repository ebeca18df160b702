package math

// AABB is an axis-aligned box. Min is the top-left corner, Max the
// bottom-right corner (Y grows downward).
type AABB struct {
	Min, Max Vec2
}

// NewAABB builds a box from its top-left corner and its size.
func NewAABB(x, y, width, height float64) AABB {
	return AABB{Min: Vec2{x, y}, Max: Vec2{x + width, y + height}}
}

// Width returns the horizontal extent.
func (b AABB) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the middle point.
func (b AABB) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Overlaps reports whether the interiors of b and other intersect.
// Boxes that only share an edge do not overlap.
func (b AABB) Overlaps(other AABB) bool {
	return b.Min.X < other.Max.X && b.Max.X > other.Min.X &&
		b.Min.Y < other.Max.Y && b.Max.Y > other.Min.Y
}

// Contains reports whether p lies inside b, edges included.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Expand grows the box by the given margins on each side.
func (b AABB) Expand(left, top, right, bottom float64) AABB {
	return AABB{
		Min: Vec2{b.Min.X - left, b.Min.Y - top},
		Max: Vec2{b.Max.X + right, b.Max.Y + bottom},
	}
}
