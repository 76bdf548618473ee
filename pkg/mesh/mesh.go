// Package mesh defines the triangle mesh produced by surface tessellation.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z), normals
// has 3 floats per vertex, indices has 3 uint32s per triangle. The layout
// is what the frontend viewer uploads directly into GPU buffers.
package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a triangle mesh suitable for rendering.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// vertex returns vertex i as a float64 vector.
func (m *Mesh) vertex(i uint32) v3.Vec {
	return v3.Vec{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}

// BoundingSphere approximately encloses all mesh vertices. The viewer uses
// it to auto-frame the camera.
type BoundingSphere struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}
