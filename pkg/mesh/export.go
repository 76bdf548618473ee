package mesh

import (
	"fmt"

	"github.com/fogleman/fauxgl"
)

// toFauxgl converts the indexed mesh into a fauxgl triangle soup for
// export and offscreen rendering.
func (m *Mesh) toFauxgl() *fauxgl.Mesh {
	triangles := make([]*fauxgl.Triangle, 0, m.TriangleCount())
	for t := 0; t < len(m.Indices); t += 3 {
		a := m.vertex(m.Indices[t])
		b := m.vertex(m.Indices[t+1])
		c := m.vertex(m.Indices[t+2])
		triangles = append(triangles, fauxgl.NewTriangleForPoints(
			fauxgl.V(a.X, a.Y, a.Z),
			fauxgl.V(b.X, b.Y, b.Z),
			fauxgl.V(c.X, c.Y, c.Z),
		))
	}
	return fauxgl.NewTriangleMesh(triangles)
}

// SaveSTL writes the mesh to path as a binary STL file.
func (m *Mesh) SaveSTL(path string) error {
	if m.IsEmpty() {
		return fmt.Errorf("mesh is empty, nothing to export")
	}
	return m.toFauxgl().SaveSTL(path)
}

// RenderPNG renders a Phong-shaded snapshot of the mesh to path. The
// camera is framed from the bounding sphere so any surface, whatever its
// scale, fills the image.
func (m *Mesh) RenderPNG(path string, width, height int, sphere BoundingSphere) error {
	if m.IsEmpty() {
		return fmt.Errorf("mesh is empty, nothing to render")
	}

	center := fauxgl.V(sphere.Center[0], sphere.Center[1], sphere.Center[2])
	eye := center.Add(fauxgl.V(1, -1, 0.75).Normalize().MulScalar(sphere.Radius * 2.5))
	up := fauxgl.V(0, 0, 1)

	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(40, aspect, sphere.Radius*0.01, sphere.Radius*20)
	light := fauxgl.V(0.6, -0.4, 1).Normalize()

	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor("#4A90D9")

	context := fauxgl.NewContext(width, height)
	context.ClearColorBufferWith(fauxgl.HexColor("#1D2021"))
	context.Shader = shader
	context.DrawMesh(m.toFauxgl())

	return fauxgl.SavePNG(path, context.Image())
}
