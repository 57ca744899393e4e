package stl

import "github.com/Faultbox/meshview/pkg/math"

// NormalizedSize is the target extent for Mesh.Normalize: the largest
// bounding box dimension of a normalized mesh.
const NormalizedSize = 10.0

// Triangle is a single facet with its unit surface normal.
type Triangle struct {
	V      [3]math.Vec3
	Normal math.Vec3
}

// Centroid returns the center point of the triangle.
func (t *Triangle) Centroid() math.Vec3 {
	return t.V[0].Add(t.V[1]).Add(t.V[2]).Scale(1.0 / 3.0)
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest axis extent.
func (b Bounds) MaxExtent() float32 {
	return b.Size().MaxComponent()
}

// Radius returns the radius of the sphere enclosing the box, centered
// at the box center.
func (b Bounds) Radius() float32 {
	return b.Size().Length() * 0.5
}

// Mesh is a parsed triangle soup with its bounding box.
type Mesh struct {
	// Name is the solid name from an ASCII file, or the trimmed binary
	// header text. May be empty.
	Name      string
	Triangles []Triangle
	Bounds    Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// ComputeBounds recalculates the bounding box from the triangle vertices.
func (m *Mesh) ComputeBounds() {
	if len(m.Triangles) == 0 {
		m.Bounds = Bounds{}
		return
	}

	min := m.Triangles[0].V[0]
	max := min
	for i := range m.Triangles {
		for _, v := range m.Triangles[i].V {
			min = min.Min(v)
			max = max.Max(v)
		}
	}
	m.Bounds = Bounds{Min: min, Max: max}
}

// Normalize translates the mesh so its bounding box center sits at the
// origin and uniformly scales it so the largest extent equals
// NormalizedSize. Degenerate meshes (zero extent) are only recentered.
// Normals are unaffected: translation and uniform scaling preserve
// direction.
func (m *Mesh) Normalize() {
	if len(m.Triangles) == 0 {
		return
	}

	center := m.Bounds.Center()
	extent := m.Bounds.MaxExtent()

	scale := float32(1.0)
	if extent > 0 {
		scale = NormalizedSize / extent
	}

	for i := range m.Triangles {
		for j := range m.Triangles[i].V {
			m.Triangles[i].V[j] = m.Triangles[i].V[j].Sub(center).Scale(scale)
		}
	}
	m.ComputeBounds()
}

// FaceNormal computes the unit normal of a triangle from its winding
// order (counter-clockwise). Returns the zero vector for degenerate
// triangles.
func FaceNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// EstimateTriangleCount estimates the triangle count of an STL payload
// from its byte length, assuming the binary layout (84-byte preamble
// plus 50 bytes per facet). For ASCII files this undercounts badly;
// it is a pre-parse hint only.
func EstimateTriangleCount(byteLen int) int {
	if byteLen < binaryHeaderSize+4 {
		return 0
	}
	return (byteLen - binaryHeaderSize - 4) / binaryRecordSize
}
