package system

import (
	"testing"

	"github.com/milk9111/boxkit/ecs/component"
)

func TestScreenRect(t *testing.T) {
	body, err := component.NewBody(10, 20, 4, 6, 0, 0, true, false)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		cam        *component.Camera
		x, y, w, h float32
	}{
		{"no_camera", nil, 8, 17, 4, 6},
		{"offset", &component.Camera{X: 2, Y: 3}, 6, 14, 4, 6},
		{"zoomed", &component.Camera{X: 2, Y: 3, Zoom: 2}, 12, 28, 8, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := screenRect(tt.cam, tt.cam.Scale(), body)
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Fatalf("expected (%v, %v, %v, %v), got (%v, %v, %v, %v)", tt.x, tt.y, tt.w, tt.h, x, y, w, h)
			}
		})
	}
}
