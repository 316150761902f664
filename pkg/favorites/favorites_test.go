package favorites

import (
	"path/filepath"
	"testing"

	"github.com/velten/go-fractal-explorer/pkg/fractal"
	"github.com/velten/go-fractal-explorer/pkg/palette"
	"github.com/velten/go-fractal-explorer/pkg/renderer"
	"github.com/velten/go-fractal-explorer/pkg/viewport"
)

func TestRoundTripMandelbrot(t *testing.T) {
	v := viewport.Default(800, 600)
	zoomed := v.ZoomOut() // A non-default view so the round trip means something
	req := renderer.NewRequest(zoomed, fractal.Mandelbrot(), palette.BuiltIn(palette.Sunset), 256)

	restored, err := FromRequest(req).ToRequest(256)
	if err != nil {
		t.Fatalf("ToRequest failed: %v", err)
	}

	if restored.Viewport != req.Viewport {
		t.Errorf("Viewport changed in round trip: %+v -> %+v", req.Viewport, restored.Viewport)
	}
	if restored.Kind != req.Kind {
		t.Errorf("Kind changed in round trip: %v -> %v", req.Kind, restored.Kind)
	}
	if restored.Palette.Name() != "sunset" {
		t.Errorf("Palette changed in round trip: got %q", restored.Palette.Name())
	}
}

func TestRoundTripJuliaUserGradient(t *testing.T) {
	v := viewport.Default(640, 480)
	pal := palette.UserGradient(palette.DefaultUserColors[0], palette.DefaultUserColors[1])
	req := renderer.NewRequest(v, fractal.Julia(fractal.DefaultJuliaParam), pal, 512)

	restored, err := FromRequest(req).ToRequest(512)
	if err != nil {
		t.Fatalf("ToRequest failed: %v", err)
	}

	if !restored.Kind.IsJulia() {
		t.Fatal("Julia kind lost in round trip")
	}
	if restored.Kind.JuliaParam() != fractal.DefaultJuliaParam {
		t.Errorf("Julia parameter changed: %v", restored.Kind.JuliaParam())
	}
	if !restored.Palette.IsUserGradient() {
		t.Fatal("User gradient lost in round trip")
	}
	a, b := restored.Palette.UserColors()
	if a != palette.DefaultUserColors[0] || b != palette.DefaultUserColors[1] {
		t.Errorf("Gradient colors changed: %v, %v", a, b)
	}
}

func TestToRequestRejectsUnknownValues(t *testing.T) {
	base := FromRequest(renderer.NewRequest(viewport.Default(100, 100),
		fractal.Mandelbrot(), palette.BuiltIn(palette.Classic), 100))

	badFractal := base
	badFractal.Fractal = "burning-ship"
	if _, err := badFractal.ToRequest(100); err == nil {
		t.Error("Expected error for unknown fractal kind")
	}

	badPalette := base
	badPalette.Palette = "plaid"
	if _, err := badPalette.ToRequest(100); err == nil {
		t.Error("Expected error for unknown palette")
	}
}

func TestStoreSaveLoadList(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "favorites"))

	// Listing an empty (not yet created) store is not an error
	paths, err := store.List()
	if err != nil {
		t.Fatalf("List on missing directory failed: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("Expected empty list, got %v", paths)
	}

	fav := FromRequest(renderer.NewRequest(viewport.Default(800, 600),
		fractal.Julia(fractal.DefaultJuliaParam), palette.BuiltIn(palette.Neon), 300))

	path, err := store.Save(fav)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != fav {
		t.Errorf("Loaded favorite differs:\nsaved:  %+v\nloaded: %+v", fav, loaded)
	}

	paths, err = store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Errorf("Expected [%s], got %v", path, paths)
	}
}
