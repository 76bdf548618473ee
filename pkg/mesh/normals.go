package mesh

import (
	"github.com/chewxy/math32"
)

// ComputeNormals derives per-vertex normals from adjacent face geometry.
// Each face normal is accumulated unnormalized, so larger triangles weigh
// more, then every vertex sum is normalized. Vertices touched by no
// non-degenerate face get the +Z axis.
func (m *Mesh) ComputeNormals() {
	normals := make([]float32, len(m.Vertices))

	for t := 0; t < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		a := m.vertex(ia)
		b := m.vertex(ib)
		c := m.vertex(ic)
		n := b.Sub(a).Cross(c.Sub(a))

		for _, i := range [3]uint32{ia, ib, ic} {
			normals[3*i] += float32(n.X)
			normals[3*i+1] += float32(n.Y)
			normals[3*i+2] += float32(n.Z)
		}
	}

	for i := 0; i < len(normals); i += 3 {
		nx, ny, nz := normals[i], normals[i+1], normals[i+2]
		length := math32.Sqrt(nx*nx + ny*ny + nz*nz)
		if length < 1e-12 {
			normals[i], normals[i+1], normals[i+2] = 0, 0, 1
			continue
		}
		normals[i] = nx / length
		normals[i+1] = ny / length
		normals[i+2] = nz / length
	}

	m.Normals = normals
}

// ComputeBoundingSphere returns a sphere enclosing all vertices: centered
// on the bounding box center, with radius the farthest vertex distance.
// A degenerate mesh (empty, or all vertices coincident) falls back to
// radius 1 so the camera always has something to frame.
func (m *Mesh) ComputeBoundingSphere() BoundingSphere {
	if m.IsEmpty() {
		return BoundingSphere{Radius: 1}
	}

	min := m.vertex(0)
	max := min
	for i := 1; i < m.VertexCount(); i++ {
		p := m.vertex(uint32(i))
		min = min.Min(p)
		max = max.Max(p)
	}

	center := min.Add(max).MulScalar(0.5)
	radius := 0.0
	for i := 0; i < m.VertexCount(); i++ {
		d := m.vertex(uint32(i)).Sub(center).Length()
		if d > radius {
			radius = d
		}
	}
	if radius < 1e-9 {
		radius = 1
	}

	return BoundingSphere{
		Center: [3]float64{center.X, center.Y, center.Z},
		Radius: radius,
	}
}
