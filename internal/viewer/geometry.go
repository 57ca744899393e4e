package viewer

import (
	"github.com/Faultbox/meshview/pkg/stl"
)

// Vertex generators for the GPU buffers. All of them return flat
// float32 slices ready for BufferData; keeping them free of GL calls
// makes them testable.

// surfaceVertices builds the interleaved position+normal buffer for
// the lit surface: 6 floats per vertex, 18 per triangle.
func surfaceVertices(m *stl.Mesh) []float32 {
	out := make([]float32, 0, len(m.Triangles)*18)
	for i := range m.Triangles {
		tri := &m.Triangles[i]
		for _, v := range tri.V {
			out = append(out, v.X, v.Y, v.Z, tri.Normal.X, tri.Normal.Y, tri.Normal.Z)
		}
	}
	return out
}

// wireframeVertices builds a line list of triangle edges: 3 floats per
// vertex, 18 per triangle. Shared edges are emitted twice; for
// inspection overlays that is cheaper than deduplication.
func wireframeVertices(m *stl.Mesh) []float32 {
	out := make([]float32, 0, len(m.Triangles)*18)
	for i := range m.Triangles {
		v := &m.Triangles[i].V
		for j := 0; j < 3; j++ {
			a, b := v[j], v[(j+1)%3]
			out = append(out, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}
	return out
}

// normalVertices builds one line per triangle from its centroid along
// the facet normal: 6 floats per triangle.
func normalVertices(m *stl.Mesh, length float32) []float32 {
	out := make([]float32, 0, len(m.Triangles)*6)
	for i := range m.Triangles {
		tri := &m.Triangles[i]
		c := tri.Centroid()
		tip := c.Add(tri.Normal.Scale(length))
		out = append(out, c.X, c.Y, c.Z, tip.X, tip.Y, tip.Z)
	}
	return out
}

// gridVertices builds a square line grid on the XZ plane centered at
// the origin. size is the full side length.
func gridVertices(size float32, divisions int) []float32 {
	if divisions < 1 {
		divisions = 1
	}

	half := size / 2
	step := size / float32(divisions)

	out := make([]float32, 0, (divisions+1)*12)
	for i := 0; i <= divisions; i++ {
		p := -half + float32(i)*step
		// Line parallel to X
		out = append(out, -half, 0, p, half, 0, p)
		// Line parallel to Z
		out = append(out, p, 0, -half, p, 0, half)
	}
	return out
}

// axisVertices builds three origin-anchored axis segments in X, Y, Z
// order: 2 vertices per axis, drawn as separate colored segments.
func axisVertices(length float32) []float32 {
	return []float32{
		0, 0, 0, length, 0, 0,
		0, 0, 0, 0, length, 0,
		0, 0, 0, 0, 0, length,
	}
}
