// Package surface tessellates a parametric surface, defined by three
// compiled coordinate functions of (u,v), into an indexed triangle mesh
// over a regular grid of the parameter domain.
package surface

import (
	"fmt"
	"math"

	"surfstudio/pkg/expr"
	"surfstudio/pkg/mesh"
)

const (
	// MinSteps is the minimum subdivision count per parameter direction.
	MinSteps = 4
	// MaxGridCells caps uSteps*vSteps so a single build stays bounded.
	MaxGridCells = 50000
)

// GridSpec is the validated numeric description of the tessellation grid.
type GridSpec struct {
	UMin, UMax     float64
	VMin, VMax     float64
	USteps, VSteps int
}

// InvalidGridSpecError reports a grid spec that fails validation. No
// expression is ever evaluated for an invalid spec.
type InvalidGridSpecError struct {
	Reason string
}

func (e *InvalidGridSpecError) Error() string {
	return fmt.Sprintf("invalid grid spec: %s", e.Reason)
}

// EvaluationError reports a coordinate function that failed at a grid
// sample. The whole tessellation is abandoned.
type EvaluationError struct {
	U, V    float64
	Message string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed at (u=%g, v=%g): %s", e.U, e.V, e.Message)
}

// NonFiniteVertexError reports a grid sample that produced NaN or an
// infinity in any coordinate.
type NonFiniteVertexError struct {
	U, V float64
}

func (e *NonFiniteVertexError) Error() string {
	return fmt.Sprintf("surface is not finite at (u=%g, v=%g)", e.U, e.V)
}

// Validate checks the grid spec and returns an InvalidGridSpecError
// describing the first violation found.
func (s GridSpec) Validate() error {
	for _, b := range [4]float64{s.UMin, s.UMax, s.VMin, s.VMax} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return &InvalidGridSpecError{Reason: "bounds must be finite"}
		}
	}
	if s.UMax <= s.UMin {
		return &InvalidGridSpecError{Reason: fmt.Sprintf("uMax (%g) must be greater than uMin (%g)", s.UMax, s.UMin)}
	}
	if s.VMax <= s.VMin {
		return &InvalidGridSpecError{Reason: fmt.Sprintf("vMax (%g) must be greater than vMin (%g)", s.VMax, s.VMin)}
	}
	if s.USteps < MinSteps || s.VSteps < MinSteps {
		return &InvalidGridSpecError{Reason: fmt.Sprintf("step counts must be at least %d, got %dx%d", MinSteps, s.USteps, s.VSteps)}
	}
	if s.USteps*s.VSteps > MaxGridCells {
		return &InvalidGridSpecError{Reason: fmt.Sprintf("grid of %dx%d exceeds the %d cell limit", s.USteps, s.VSteps, MaxGridCells)}
	}
	return nil
}

// Tessellate evaluates the three coordinate functions over the grid and
// triangulates the result. The grid has (uSteps+1)*(vSteps+1) vertices at
// flat index i*(vSteps+1)+j; interpolation divides by the step counts so
// the last row and column land exactly on uMax and vMax. The first failed
// or non-finite sample aborts the whole build: a partial mesh is never
// returned, and the previous mesh held by the caller stays intact.
func Tessellate(fx, fy, fz expr.Func, spec GridSpec) (*mesh.Mesh, mesh.BoundingSphere, error) {
	if err := spec.Validate(); err != nil {
		return nil, mesh.BoundingSphere{}, err
	}

	uCount := spec.USteps + 1
	vCount := spec.VSteps + 1
	uSpan := spec.UMax - spec.UMin
	vSpan := spec.VMax - spec.VMin

	vertices := make([]float32, 0, uCount*vCount*3)
	for i := 0; i < uCount; i++ {
		u := spec.UMin + uSpan*float64(i)/float64(spec.USteps)
		for j := 0; j < vCount; j++ {
			v := spec.VMin + vSpan*float64(j)/float64(spec.VSteps)

			x, y, z, err := sample(fx, fy, fz, u, v)
			if err != nil {
				return nil, mesh.BoundingSphere{}, err
			}
			if !finite(x) || !finite(y) || !finite(z) {
				return nil, mesh.BoundingSphere{}, &NonFiniteVertexError{U: u, V: v}
			}
			vertices = append(vertices, float32(x), float32(y), float32(z))
		}
	}

	// Each cell splits into triangles (a,b,d) and (b,c,d); winding is
	// counter-clockwise for the quad corner order a→b→c→d, so normals
	// face consistently across the sheet.
	indices := make([]uint32, 0, spec.USteps*spec.VSteps*6)
	for i := 0; i < spec.USteps; i++ {
		for j := 0; j < spec.VSteps; j++ {
			a := uint32(i*vCount + j)
			b := uint32((i+1)*vCount + j)
			c := b + 1
			d := a + 1
			indices = append(indices, a, b, d, b, c, d)
		}
	}

	m := &mesh.Mesh{Vertices: vertices, Indices: indices}
	m.ComputeNormals()
	return m, m.ComputeBoundingSphere(), nil
}

// sample evaluates the three coordinates at one grid point, converting a
// panic in a compiled function into an EvaluationError.
func sample(fx, fy, fz expr.Func, u, v float64) (x, y, z float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EvaluationError{U: u, V: v, Message: fmt.Sprint(r)}
		}
	}()
	x = fx(u, v)
	y = fy(u, v)
	z = fz(u, v)
	return x, y, z, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
