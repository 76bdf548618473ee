package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"surfstudio/pkg/expr"
	"surfstudio/pkg/fourier"
	"surfstudio/pkg/mesh"
	"surfstudio/pkg/preset"
	"surfstudio/pkg/surface"
)

// Severity levels attached to errors surfaced in the frontend status line.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// App is the Wails backend. It exposes build and fit requests to the
// frontend via bindings and owns the one piece of shared state, the
// currently displayed mesh. The mesh is replaced only after a build
// succeeds, so a failed build leaves the previous surface on screen.
type App struct {
	ctx context.Context

	mu      sync.Mutex
	current *mesh.Mesh
	sphere  mesh.BoundingSphere
}

// NewApp creates a new App.
func NewApp() *App {
	return &App{}
}

// startup is called by Wails on app startup. The context is saved so we
// can call Wails runtime methods later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// ErrorData is a JSON-serializable request error for the frontend.
type ErrorData struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// BuildRequest is the raw textual surface definition from the editor.
// Bounds are expression text ("2 * pi" is fine); step counts are plain
// integers.
type BuildRequest struct {
	X      string `json:"x"`
	Y      string `json:"y"`
	Z      string `json:"z"`
	UMin   string `json:"uMin"`
	UMax   string `json:"uMax"`
	VMin   string `json:"vMin"`
	VMax   string `json:"vMax"`
	USteps int    `json:"uSteps"`
	VSteps int    `json:"vSteps"`
}

// BuildResult is the full result of a build returned to the frontend.
// On failure Mesh is nil and Errors is non-empty.
type BuildResult struct {
	Mesh   *mesh.Mesh          `json:"mesh,omitempty"`
	Sphere mesh.BoundingSphere `json:"sphere"`
	Errors []ErrorData         `json:"errors"`
}

// BuildSurface compiles the request, tessellates it, and installs the
// resulting mesh as the current one. This is the primary binding called
// by the frontend editor. All inputs are checked before any work is
// done on the grid, so every problem in the request is reported at
// once.
func (a *App) BuildSurface(req BuildRequest) (result BuildResult) {
	result.Errors = []ErrorData{}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("BuildSurface panic: %v", r)
			result.Mesh = nil
			result.Errors = append(result.Errors, ErrorData{
				Message:  fmt.Sprintf("internal error: %v", r),
				Severity: SeverityError,
			})
		}
	}()

	spec := surface.GridSpec{USteps: req.USteps, VSteps: req.VSteps}
	bounds := []struct {
		label  string
		source string
		dst    *float64
	}{
		{"uMin", req.UMin, &spec.UMin},
		{"uMax", req.UMax, &spec.UMax},
		{"vMin", req.VMin, &spec.VMin},
		{"vMax", req.VMax, &spec.VMax},
	}
	for _, b := range bounds {
		val, err := expr.EvalScalar(b.source)
		if err != nil {
			result.Errors = append(result.Errors, ErrorData{
				Message:  fmt.Sprintf("%s: %v", b.label, err),
				Severity: SeverityError,
			})
			continue
		}
		*b.dst = val
	}

	var fx, fy, fz expr.Func
	coords := []struct {
		label  string
		source string
		dst    *expr.Func
	}{
		{"x", req.X, &fx},
		{"y", req.Y, &fy},
		{"z", req.Z, &fz},
	}
	for _, c := range coords {
		f, err := expr.Compile(c.source)
		if err != nil {
			result.Errors = append(result.Errors, ErrorData{
				Message:  fmt.Sprintf("%s: %v", c.label, err),
				Severity: SeverityError,
			})
			continue
		}
		*c.dst = f
	}

	if len(result.Errors) > 0 {
		return result
	}

	m, sphere, err := surface.Tessellate(fx, fy, fz, spec)
	if err != nil {
		result.Errors = append(result.Errors, ErrorData{
			Message:  err.Error(),
			Severity: SeverityError,
		})
		return result
	}

	a.mu.Lock()
	a.current = m
	a.sphere = sphere
	a.mu.Unlock()

	result.Mesh = m
	result.Sphere = sphere
	return result
}

// StrokePoint is one sample of a drawing gesture, in device pixels.
type StrokePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FitRequest carries one completed drawing gesture plus the canvas frame
// it was drawn on.
type FitRequest struct {
	Points []StrokePoint `json:"points"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Order  int           `json:"order"`
}

// FitResult is the outcome of a Fourier fit: coefficient sets for both
// axes, the rendered expression text, and a ready-to-build ribbon
// surface using the fitted curve as its profile.
type FitResult struct {
	XCoeffs   fourier.Coefficients `json:"xCoeffs"`
	YCoeffs   fourier.Coefficients `json:"yCoeffs"`
	XExpr     string               `json:"xExpr"`
	YExpr     string               `json:"yExpr"`
	Suggested preset.Preset        `json:"suggested"`
	Errors    []ErrorData          `json:"errors"`
}

// FitStroke fits a truncated Fourier series to the drawn stroke and
// renders the fitted curve back into expression text.
func (a *App) FitStroke(req FitRequest) (result FitResult) {
	result.Errors = []ErrorData{}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("FitStroke panic: %v", r)
			result.Errors = append(result.Errors, ErrorData{
				Message:  fmt.Sprintf("internal error: %v", r),
				Severity: SeverityError,
			})
		}
	}()

	points := make([]r2.Vec, len(req.Points))
	for i, p := range req.Points {
		points[i] = r2.Vec{X: p.X, Y: p.Y}
	}

	xc, yc, err := fourier.FitStroke(points, req.Width, req.Height, req.Order)
	if err != nil {
		result.Errors = append(result.Errors, ErrorData{
			Message:  err.Error(),
			Severity: SeverityError,
		})
		return result
	}

	result.XCoeffs = xc
	result.YCoeffs = yc
	result.XExpr = xc.Expression("u")
	result.YExpr = yc.Expression("u")
	result.Suggested = preset.Preset{
		Name: "Fitted Curve Ribbon",
		X:    result.XExpr,
		Y:    result.YExpr,
		Z:    "0.15 * v",
		UMin: "0", UMax: "2 * pi",
		VMin: "-1", VMax: "1",
		USteps: 128, VSteps: 4,
	}
	return result
}

// Examples returns the built-in surface catalog.
func (a *App) Examples() map[string]preset.Preset {
	return preset.Examples
}

// PresetResult is the outcome of decoding a preset document.
type PresetResult struct {
	Preset *preset.Preset `json:"preset,omitempty"`
	Errors []ErrorData    `json:"errors"`
}

// DecodePreset parses preset JSON handed over by the frontend's file
// loader. It accepts a single preset object or a {"presets": [...]}
// collection.
func (a *App) DecodePreset(data string) PresetResult {
	p, err := preset.Decode([]byte(data))
	if err != nil {
		return PresetResult{Errors: []ErrorData{{Message: err.Error(), Severity: SeverityError}}}
	}
	return PresetResult{Preset: p, Errors: []ErrorData{}}
}

// EncodeResult is the outcome of serializing a preset document.
type EncodeResult struct {
	Data   string      `json:"data"`
	Errors []ErrorData `json:"errors"`
}

// EncodePreset serializes a surface definition for the frontend's file
// saver, stamping in the document type and version.
func (a *App) EncodePreset(p preset.Preset) EncodeResult {
	data, err := p.Encode()
	if err != nil {
		return EncodeResult{Errors: []ErrorData{{Message: err.Error(), Severity: SeverityError}}}
	}
	return EncodeResult{Data: string(data), Errors: []ErrorData{}}
}

// ExportSTL writes the current mesh to path as binary STL.
func (a *App) ExportSTL(path string) []ErrorData {
	m, _ := a.currentMesh()
	if m == nil {
		return []ErrorData{{Message: "no surface built yet", Severity: SeverityWarning}}
	}
	if err := m.SaveSTL(path); err != nil {
		log.Printf("ExportSTL error: %v", err)
		return []ErrorData{{Message: err.Error(), Severity: SeverityError}}
	}
	return []ErrorData{}
}

// RenderPreview renders a shaded snapshot of the current mesh to path.
func (a *App) RenderPreview(path string, width, height int) []ErrorData {
	m, sphere := a.currentMesh()
	if m == nil {
		return []ErrorData{{Message: "no surface built yet", Severity: SeverityWarning}}
	}
	if err := m.RenderPNG(path, width, height, sphere); err != nil {
		log.Printf("RenderPreview error: %v", err)
		return []ErrorData{{Message: err.Error(), Severity: SeverityError}}
	}
	return []ErrorData{}
}

// currentMesh returns the installed mesh and its bounding sphere.
func (a *App) currentMesh() (*mesh.Mesh, mesh.BoundingSphere) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current, a.sphere
}
