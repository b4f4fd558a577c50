package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/boxkit/ecs"
	"github.com/milk9111/boxkit/ecs/component"
	"github.com/milk9111/boxkit/prefabs"
)

func TestBuildEntityPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntityAt(w, "player.yaml", 40, 60, Options{})
	if err != nil {
		t.Fatalf("build player: %v", err)
	}

	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) || !ecs.Has(w, e, component.InputComponent.Kind()) {
		t.Fatalf("expected player tag and input")
	}
	body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		t.Fatalf("expected body")
	}
	if pos := body.Position(); pos.X != 40 || pos.Y != 60 {
		t.Fatalf("expected body at (40, 60), got %v", pos)
	}
	if body.Layer != component.LayerOf(component.LayerPlayer) || body.Mask != component.LayerOf(component.LayerWorld) {
		t.Fatalf("unexpected layer=%b mask=%b", body.Layer, body.Mask)
	}
	if !body.Solid {
		t.Fatalf("expected bodies to default to solid")
	}

	mover, ok := ecs.Get(w, e, component.MoverComponent.Kind())
	if !ok || !mover.Slide || mover.ExternalFriction != component.DefaultExternalFriction {
		t.Fatalf("unexpected mover %+v", mover)
	}

	sensor, ok := ecs.Get(w, e, component.SensorComponent.Kind())
	want := component.LayerOf(component.LayerEnemy, component.LayerPickup, component.LayerHazard)
	if !ok || sensor.Mask != want || !sensor.Active {
		t.Fatalf("unexpected sensor %+v", sensor)
	}

	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || sprite.Fill == nil || sprite.Position != body.Position() {
		t.Fatalf("unexpected sprite %+v", sprite)
	}
}

func TestBuildEntityPrefabs(t *testing.T) {
	tests := []struct {
		prefab string
		check  func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{"wall.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			if ecs.Has(w, e, component.MoverComponent.Kind()) {
				t.Fatalf("expected a static wall")
			}
		}},
		{"platform.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			b, _ := ecs.Get(w, e, component.BodyComponent.Kind())
			if b == nil || !b.OneWay || !b.Solid {
				t.Fatalf("expected a solid one-way platform, got %+v", b)
			}
		}},
		{"spike.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			b, _ := ecs.Get(w, e, component.BodyComponent.Kind())
			if b == nil || b.Solid || !ecs.Has(w, e, component.HazardTagComponent.Kind()) {
				t.Fatalf("expected a non-solid hazard")
			}
		}},
		{"coin.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			if !ecs.Has(w, e, component.PickupTagComponent.Kind()) {
				t.Fatalf("expected pickup tag")
			}
		}},
		{"crate.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			m, _ := ecs.Get(w, e, component.MoverComponent.Kind())
			if m == nil || !m.Pushable || m.ExternalFriction != 6 {
				t.Fatalf("unexpected crate mover %+v", m)
			}
		}},
		{"patroller.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			c, _ := ecs.Get(w, e, component.ControllerComponent.Kind())
			if c == nil || c.Script == "" || c.Direction != 1 {
				t.Fatalf("unexpected controller %+v", c)
			}
		}},
		{"camera.yaml", func(t *testing.T, w *ecs.World, e ecs.Entity) {
			c, _ := ecs.Get(w, e, component.CameraComponent.Kind())
			if c == nil || c.Zoom != 2 {
				t.Fatalf("unexpected camera %+v", c)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := BuildEntity(w, tt.prefab)
			if err != nil {
				t.Fatalf("build %s: %v", tt.prefab, err)
			}
			tt.check(t, w, e)
		})
	}
}

func TestBuildEntityDefaultFriction(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntityWithOptions(w, "patroller.yaml", Options{DefaultFriction: 3})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	m, _ := ecs.Get(w, e, component.MoverComponent.Kind())
	if m == nil || m.ExternalFriction != 3 {
		t.Fatalf("expected configured default friction, got %+v", m)
	}
}

func TestBuildFromSpecErrors(t *testing.T) {
	tests := []struct {
		name       string
		components map[string]any
		wantErr    error
		wantText   string
	}{
		{
			name:       "unknown_component",
			components: map[string]any{"rigidbody": map[string]any{}},
			wantText:   "no builder",
		},
		{
			name:       "negative_size",
			components: map[string]any{"body": map[string]any{"width": -4, "height": 4}},
			wantErr:    component.ErrInvalidExtent,
		},
		{
			name:       "unknown_layer",
			components: map[string]any{"body": map[string]any{"width": 4, "height": 4, "layers": []any{"lava"}}},
			wantErr:    component.ErrUnknownLayer,
		},
		{
			name:       "controller_without_script",
			components: map[string]any{"controller": map[string]any{"speed": 10}},
			wantText:   "requires a script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := buildFromSpec(w, tt.name, prefabs.EntityBuildSpec{Name: tt.name, Components: tt.components}, Options{})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Fatalf("expected %q in %v", tt.wantText, err)
			}
			if n := len(w.Entities()); n != 0 {
				t.Fatalf("expected failed build to leave no entities, got %d", n)
			}
		})
	}
}

func TestBuildEntityMissingPrefab(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildEntity(w, "does_not_exist.yaml"); err == nil {
		t.Fatalf("expected error for missing prefab")
	}
}

func TestResizeEntity(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntityAt(w, "wall.yaml", 10, 20, Options{})
	if err != nil {
		t.Fatalf("build wall: %v", err)
	}
	if err := ResizeEntity(w, e, 100, 8); err != nil {
		t.Fatalf("resize: %v", err)
	}

	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	if size := body.Size(); size.X != 100 || size.Y != 8 {
		t.Fatalf("unexpected size %v", size)
	}
	if pos := body.Position(); pos.X != 10 || pos.Y != 20 {
		t.Fatalf("expected position kept, got %v", pos)
	}
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if sprite.Width != 100 || sprite.Height != 8 {
		t.Fatalf("expected sprite resized, got %vx%v", sprite.Width, sprite.Height)
	}

	if err := ResizeEntity(w, e, -1, 8); !errors.Is(err, component.ErrInvalidExtent) {
		t.Fatalf("expected ErrInvalidExtent, got %v", err)
	}
}
