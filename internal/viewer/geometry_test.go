package viewer

import (
	"testing"

	"github.com/Faultbox/meshview/pkg/math"
	"github.com/Faultbox/meshview/pkg/stl"
)

func testMesh() *stl.Mesh {
	m := &stl.Mesh{
		Triangles: []stl.Triangle{
			{
				V:      [3]math.Vec3{{X: 0}, {X: 1}, {Y: 1}},
				Normal: math.Vec3{Z: 1},
			},
			{
				V:      [3]math.Vec3{{X: 1}, {X: 1, Y: 1}, {Y: 1}},
				Normal: math.Vec3{Z: 1},
			},
		},
	}
	m.ComputeBounds()
	return m
}

func TestSurfaceVertices(t *testing.T) {
	m := testMesh()
	verts := surfaceVertices(m)

	// 2 triangles, 3 vertices each, 6 floats per vertex.
	if len(verts) != 36 {
		t.Fatalf("expected 36 floats, got %d", len(verts))
	}

	// First vertex: position (0,0,0), normal (0,0,1).
	want := []float32{0, 0, 0, 0, 0, 1}
	for i, w := range want {
		if verts[i] != w {
			t.Errorf("verts[%d] = %f, expected %f", i, verts[i], w)
		}
	}
}

func TestWireframeVertices(t *testing.T) {
	m := testMesh()
	verts := wireframeVertices(m)

	// 3 edges per triangle, 2 vertices per edge, 3 floats per vertex.
	if len(verts) != 36 {
		t.Fatalf("expected 36 floats, got %d", len(verts))
	}

	// First edge runs (0,0,0) -> (1,0,0).
	if verts[0] != 0 || verts[3] != 1 {
		t.Errorf("first edge = %v", verts[:6])
	}
}

func TestNormalVertices(t *testing.T) {
	m := testMesh()
	verts := normalVertices(m, 2.0)

	// One line per triangle.
	if len(verts) != 12 {
		t.Fatalf("expected 12 floats, got %d", len(verts))
	}

	// The tip sits `length` along the normal from the centroid.
	if dz := verts[5] - verts[2]; dz != 2.0 {
		t.Errorf("normal marker length = %f, expected 2", dz)
	}
}

func TestGridVertices(t *testing.T) {
	verts := gridVertices(20, 20)

	// 21 lines in each direction, 2 vertices per line, 3 floats each.
	if len(verts) != 21*2*6 {
		t.Fatalf("expected %d floats, got %d", 21*2*6, len(verts))
	}

	// All vertices stay on the XZ plane within the half-size.
	for i := 0; i < len(verts); i += 3 {
		x, y, z := verts[i], verts[i+1], verts[i+2]
		if y != 0 {
			t.Fatalf("grid vertex %d off the XZ plane: y=%f", i/3, y)
		}
		if x < -10 || x > 10 || z < -10 || z > 10 {
			t.Fatalf("grid vertex %d out of bounds: (%f, %f)", i/3, x, z)
		}
	}
}

func TestGridVertices_MinDivisions(t *testing.T) {
	verts := gridVertices(10, 0)
	// Falls back to a single division: 2 lines each way.
	if len(verts) != 2*2*6 {
		t.Errorf("expected %d floats, got %d", 2*2*6, len(verts))
	}
}

func TestAxisVertices(t *testing.T) {
	verts := axisVertices(5)

	if len(verts) != 18 {
		t.Fatalf("expected 18 floats, got %d", len(verts))
	}

	// Each segment starts at the origin and extends along one axis.
	tips := [][3]float32{{5, 0, 0}, {0, 5, 0}, {0, 0, 5}}
	for i, tip := range tips {
		base := verts[i*6 : i*6+3]
		end := verts[i*6+3 : i*6+6]
		if base[0] != 0 || base[1] != 0 || base[2] != 0 {
			t.Errorf("axis %d does not start at origin: %v", i, base)
		}
		if end[0] != tip[0] || end[1] != tip[1] || end[2] != tip[2] {
			t.Errorf("axis %d tip = %v, expected %v", i, end, tip)
		}
	}
}

func TestEmptyMeshGeometry(t *testing.T) {
	m := &stl.Mesh{}

	if len(surfaceVertices(m)) != 0 {
		t.Error("surface vertices for empty mesh")
	}
	if len(wireframeVertices(m)) != 0 {
		t.Error("wireframe vertices for empty mesh")
	}
	if len(normalVertices(m, 1)) != 0 {
		t.Error("normal vertices for empty mesh")
	}
}
