package main

import (
	"os"
	"path/filepath"
	"testing"

	"surfstudio/pkg/preset"
)

// sphereRequest builds a request from the sphere catalog entry. This is
// the same path the frontend takes when the user picks an example.
func sphereRequest() BuildRequest {
	p := preset.Examples["sphere"]
	return BuildRequest{
		X: p.X, Y: p.Y, Z: p.Z,
		UMin: p.UMin, UMax: p.UMax,
		VMin: p.VMin, VMax: p.VMax,
		USteps: p.USteps, VSteps: p.VSteps,
	}
}

// TestE2EBuildSphere exercises the full pipeline: expression text →
// compile → tessellate → mesh. This is the same path that the Wails
// BuildSurface binding takes, but without the Wails runtime.
func TestE2EBuildSphere(t *testing.T) {
	app := NewApp()
	result := app.BuildSurface(sphereRequest())

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("build error: %s", e.Message)
		}
		t.FailNow()
	}
	if result.Mesh == nil {
		t.Fatal("expected a mesh, got nil")
	}

	wantVerts := (64 + 1) * (32 + 1)
	if got := result.Mesh.VertexCount(); got != wantVerts {
		t.Errorf("expected %d vertices, got %d", wantVerts, got)
	}
	if got := result.Mesh.TriangleCount(); got != 64*32*2 {
		t.Errorf("expected %d triangles, got %d", 64*32*2, got)
	}
	if len(result.Mesh.Normals) != len(result.Mesh.Vertices) {
		t.Errorf("normals length %d != vertices length %d",
			len(result.Mesh.Normals), len(result.Mesh.Vertices))
	}
	if result.Sphere.Radius <= 0 {
		t.Errorf("expected positive bounding sphere radius, got %v", result.Sphere.Radius)
	}

	// The built mesh must be installed as the current one.
	current, _ := app.currentMesh()
	if current != result.Mesh {
		t.Error("built mesh was not installed as the current mesh")
	}
}

// TestE2EBuildCatalog builds every catalog example through the binding.
func TestE2EBuildCatalog(t *testing.T) {
	for key, p := range preset.Examples {
		t.Run(key, func(t *testing.T) {
			app := NewApp()
			result := app.BuildSurface(BuildRequest{
				X: p.X, Y: p.Y, Z: p.Z,
				UMin: p.UMin, UMax: p.UMax,
				VMin: p.VMin, VMax: p.VMax,
				USteps: p.USteps, VSteps: p.VSteps,
			})

			if len(result.Errors) > 0 {
				for _, e := range result.Errors {
					t.Errorf("build error: %s", e.Message)
				}
				t.FailNow()
			}
			if result.Mesh == nil || result.Mesh.IsEmpty() {
				t.Fatal("expected a non-empty mesh")
			}
		})
	}
}

// TestE2ECompileError ensures bad expression text is reported per field,
// not as a fatal error.
func TestE2ECompileError(t *testing.T) {
	app := NewApp()
	req := sphereRequest()
	req.X = "cos(u" // unmatched paren
	req.Z = "foo(v)"

	result := app.BuildSurface(req)

	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.Mesh != nil {
		t.Error("expected nil mesh on compile error")
	}
}

// TestE2EFitStroke exercises the drawing pipeline: pixel stroke →
// normalize → fit → expression text → compilable surface definition.
func TestE2EFitStroke(t *testing.T) {
	app := NewApp()
	result := app.FitStroke(FitRequest{
		Points: circleStroke(64, 400, 400, 150),
		Width:  400, Height: 400,
		Order: 3,
	})

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("fit error: %s", e.Message)
		}
		t.FailNow()
	}
	if result.XExpr == "" || result.YExpr == "" {
		t.Fatalf("expected non-empty expressions, got (%q, %q)", result.XExpr, result.YExpr)
	}
	if result.XCoeffs.Order() != 3 || result.YCoeffs.Order() != 3 {
		t.Errorf("expected order 3 fits, got %d and %d",
			result.XCoeffs.Order(), result.YCoeffs.Order())
	}

	// The suggested ribbon must build as-is.
	s := result.Suggested
	built := app.BuildSurface(BuildRequest{
		X: s.X, Y: s.Y, Z: s.Z,
		UMin: s.UMin, UMax: s.UMax,
		VMin: s.VMin, VMax: s.VMax,
		USteps: s.USteps, VSteps: s.VSteps,
	})
	if len(built.Errors) > 0 {
		t.Fatalf("suggested preset failed to build: %v", built.Errors)
	}
	if built.Mesh.IsEmpty() {
		t.Error("suggested preset built an empty mesh")
	}
}

// TestE2EPresetRoundTrip saves the current definition and loads it back
// through the bindings.
func TestE2EPresetRoundTrip(t *testing.T) {
	app := NewApp()

	encoded := app.EncodePreset(preset.Examples["torus"])
	if len(encoded.Errors) > 0 {
		t.Fatalf("encode errors: %v", encoded.Errors)
	}

	decoded := app.DecodePreset(encoded.Data)
	if len(decoded.Errors) > 0 {
		t.Fatalf("decode errors: %v", decoded.Errors)
	}
	if decoded.Preset.Name != "Torus" {
		t.Errorf("expected name Torus, got %q", decoded.Preset.Name)
	}
	if decoded.Preset.Type != preset.TypeName {
		t.Errorf("expected type %q, got %q", preset.TypeName, decoded.Preset.Type)
	}
}

// TestE2EExportSTL builds a surface and writes it out.
func TestE2EExportSTL(t *testing.T) {
	app := NewApp()
	if result := app.BuildSurface(sphereRequest()); len(result.Errors) > 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}

	path := filepath.Join(t.TempDir(), "sphere.stl")
	if errs := app.ExportSTL(path); len(errs) > 0 {
		t.Fatalf("export errors: %v", errs)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat exported file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exported STL is empty")
	}
}

// TestE2ERenderPreview builds a surface and renders a snapshot.
func TestE2ERenderPreview(t *testing.T) {
	app := NewApp()
	if result := app.BuildSurface(sphereRequest()); len(result.Errors) > 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}

	path := filepath.Join(t.TempDir(), "sphere.png")
	if errs := app.RenderPreview(path, 320, 240); len(errs) > 0 {
		t.Fatalf("render errors: %v", errs)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat rendered file: %v", err)
	}
}
