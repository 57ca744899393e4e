// Package stl parses STL triangle meshes in both binary and ASCII form.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	stdmath "math"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshview/pkg/math"
)

// STL format errors.
var (
	ErrTruncated     = errors.New("truncated STL data")
	ErrCountMismatch = errors.New("STL triangle count does not match payload size")
	ErrNoGeometry    = errors.New("STL contains no triangles")
	ErrMalformed     = errors.New("malformed STL")
)

const (
	binaryHeaderSize = 80
	binaryRecordSize = 50 // 12B normal + 3*12B vertices + 2B attribute
)

// Parse parses STL data, detecting binary vs ASCII form from the
// payload structure. The "solid" prefix alone is not trusted: a binary
// file whose header happens to start with "solid" is still parsed as
// binary when its length matches the declared triangle count.
func Parse(data []byte) (*Mesh, error) {
	if looksBinary(data) {
		return parseBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(data)
	}
	return parseBinary(data)
}

// ParseFile parses an STL file from disk.
func ParseFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return Parse(data)
}

// looksBinary reports whether the payload length exactly matches the
// binary layout for its declared triangle count.
func looksBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	expected := binaryHeaderSize + 4 + int64(count)*binaryRecordSize
	return int64(len(data)) == expected
}

func parseBinary(data []byte) (*Mesh, error) {
	if len(data) < binaryHeaderSize+4 {
		return nil, ErrTruncated
	}

	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	if count == 0 {
		return nil, ErrNoGeometry
	}

	expected := binaryHeaderSize + 4 + int64(count)*binaryRecordSize
	if int64(len(data)) < expected {
		return nil, fmt.Errorf("%w: %d triangles declared, %d bytes present",
			ErrCountMismatch, count, len(data))
	}

	mesh := &Mesh{
		Name:      headerName(data[:binaryHeaderSize]),
		Triangles: make([]Triangle, count),
	}

	rest := data[binaryHeaderSize+4:]
	for i := 0; i < int(count); i++ {
		rec := rest[i*binaryRecordSize:]

		tri := Triangle{Normal: readVec3(rec)}
		for j := 0; j < 3; j++ {
			tri.V[j] = readVec3(rec[12+j*12:])
		}
		// Attribute byte count (rec[48:50]) carries no portable meaning.

		if tri.Normal.Length() == 0 || !tri.Normal.IsFinite() {
			tri.Normal = FaceNormal(tri.V[0], tri.V[1], tri.V[2])
		} else {
			tri.Normal = tri.Normal.Normalize()
		}
		mesh.Triangles[i] = tri
	}

	mesh.ComputeBounds()
	return mesh, nil
}

func readVec3(b []byte) math.Vec3 {
	return math.Vec3{
		X: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: stdmath.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

// headerName extracts printable text from the 80-byte binary header.
func headerName(header []byte) string {
	end := bytes.IndexByte(header, 0)
	if end < 0 {
		end = len(header)
	}
	name := strings.TrimSpace(string(header[:end]))
	for _, r := range name {
		if r < 0x20 || r > 0x7e {
			return ""
		}
	}
	return name
}

func parseASCII(data []byte) (*Mesh, error) {
	mesh := &Mesh{}

	var (
		tri       Triangle
		vertexIdx int
		inFacet   bool
		inLoop    bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if inFacet {
				return nil, fmt.Errorf("%w: line %d: nested facet", ErrMalformed, lineNo)
			}
			// "facet normal nx ny nz"
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("%w: line %d: bad facet declaration", ErrMalformed, lineNo)
			}
			n, err := parseVec3(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
			}
			tri = Triangle{Normal: n}
			vertexIdx = 0
			inFacet = true

		case "outer":
			if !inFacet || inLoop {
				return nil, fmt.Errorf("%w: line %d: unexpected 'outer loop'", ErrMalformed, lineNo)
			}
			inLoop = true

		case "vertex":
			if !inLoop {
				return nil, fmt.Errorf("%w: line %d: vertex outside loop", ErrMalformed, lineNo)
			}
			if vertexIdx >= 3 {
				return nil, fmt.Errorf("%w: line %d: more than 3 vertices in facet", ErrMalformed, lineNo)
			}
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: bad vertex", ErrMalformed, lineNo)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
			}
			tri.V[vertexIdx] = v
			vertexIdx++

		case "endloop":
			if !inLoop {
				return nil, fmt.Errorf("%w: line %d: endloop outside loop", ErrMalformed, lineNo)
			}
			if vertexIdx != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrMalformed, lineNo, vertexIdx)
			}
			inLoop = false

		case "endfacet":
			if !inFacet || inLoop {
				return nil, fmt.Errorf("%w: line %d: unexpected endfacet", ErrMalformed, lineNo)
			}
			if tri.Normal.Length() == 0 || !tri.Normal.IsFinite() {
				tri.Normal = FaceNormal(tri.V[0], tri.V[1], tri.V[2])
			} else {
				tri.Normal = tri.Normal.Normalize()
			}
			mesh.Triangles = append(mesh.Triangles, tri)
			inFacet = false

		case "endsolid":
			// Tolerated in any position; many exporters omit it entirely.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if inFacet || inLoop {
		return nil, fmt.Errorf("%w: unterminated facet", ErrTruncated)
	}
	if len(mesh.Triangles) == 0 {
		return nil, ErrNoGeometry
	}

	mesh.ComputeBounds()
	return mesh, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	var c [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("bad coordinate %q", f)
		}
		c[i] = float32(v)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
