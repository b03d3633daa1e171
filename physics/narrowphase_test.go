package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rigid2d/vmath"
)

func circleAt(x, y, radius float64) *Shape {
	s := NewCircleShape(NewTransform(mgl64.Vec2{x, y}), radius)
	s.refreshBounds()
	return s
}

func boxAt(x, y, sx, sy float64) *Shape {
	s := NewBoxShape(NewTransform(mgl64.Vec2{x, y}), mgl64.Vec2{sx, sy})
	s.refreshBounds()
	return s
}

func TestCollideCircleCircle(t *testing.T) {
	tests := []struct {
		name       string
		a, b       *Shape
		wantHit    bool
		wantNormal mgl64.Vec2
		wantDepth  float64
	}{
		{"Overlapping on X", circleAt(0, 0, 10), circleAt(15, 0, 10), true, mgl64.Vec2{1, 0}, 5},
		{"Overlapping on Y", circleAt(0, 0, 3), circleAt(0, 4, 3), true, mgl64.Vec2{0, 1}, 2},
		{"Separated", circleAt(0, 0, 10), circleAt(25, 0, 10), false, mgl64.Vec2{}, 0},
		{"Touching exactly misses", circleAt(0, 0, 5), circleAt(10, 0, 5), false, mgl64.Vec2{}, 0},
		{"Coincident centers", circleAt(0, 0, 2), circleAt(0, 0, 3), true, mgl64.Vec2{1, 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hit := collide(tt.a, tt.b)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if !hit {
				return
			}
			if !vecApprox(c.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("normal = %v, want %v", c.Normal, tt.wantNormal)
			}
			if !vmath.ApproxEqual(c.Depth, tt.wantDepth, 1e-9) {
				t.Errorf("depth = %v, want %v", c.Depth, tt.wantDepth)
			}
		})
	}
}

func TestCollideBoxBox(t *testing.T) {
	tests := []struct {
		name       string
		a, b       *Shape
		wantHit    bool
		wantNormal mgl64.Vec2
		wantDepth  float64
	}{
		{"Minimum axis X", boxAt(0, 0, 10, 10), boxAt(9, 0, 10, 10), true, mgl64.Vec2{1, 0}, 1},
		{"Minimum axis Y", boxAt(0, 0, 10, 10), boxAt(0, -8, 10, 10), true, mgl64.Vec2{0, -1}, 2},
		{"Symmetric overlap picks X", boxAt(0, 0, 10, 10), boxAt(5, 5, 10, 10), true, mgl64.Vec2{1, 0}, 5},
		{"Separated on X", boxAt(0, 0, 10, 10), boxAt(20, 0, 10, 10), false, mgl64.Vec2{}, 0},
		{"Edge touch misses", boxAt(0, 0, 10, 10), boxAt(10, 0, 10, 10), false, mgl64.Vec2{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, hit := collide(tt.a, tt.b)
			if hit != tt.wantHit {
				t.Fatalf("hit = %v, want %v", hit, tt.wantHit)
			}
			if !hit {
				return
			}
			if !vecApprox(c.Normal, tt.wantNormal, 1e-9) {
				t.Errorf("normal = %v, want %v", c.Normal, tt.wantNormal)
			}
			if !vmath.ApproxEqual(c.Depth, tt.wantDepth, 1e-9) {
				t.Errorf("depth = %v, want %v", c.Depth, tt.wantDepth)
			}
		})
	}
}

func TestCollideBoxCircle(t *testing.T) {
	t.Run("Circle outside near a face", func(t *testing.T) {
		box := boxAt(0, 0, 10, 10)
		circle := circleAt(7, 0, 3)

		c, hit := collide(box, circle)
		if !hit {
			t.Fatal("expected contact")
		}
		if !vecApprox(c.Normal, mgl64.Vec2{1, 0}, 1e-9) {
			t.Errorf("normal = %v, want (1,0)", c.Normal)
		}
		if !vmath.ApproxEqual(c.Depth, 1, 1e-9) {
			t.Errorf("depth = %v, want 1", c.Depth)
		}
		if !vecApprox(c.Point, mgl64.Vec2{5, 0}, 1e-9) {
			t.Errorf("point = %v, want (5,0)", c.Point)
		}
	})

	t.Run("Circle center inside the box", func(t *testing.T) {
		box := boxAt(0, 0, 10, 10)
		circle := circleAt(4, 0, 2)

		c, hit := collide(box, circle)
		if !hit {
			t.Fatal("expected contact")
		}
		// Nearest face is +X at distance 1; depth grows past the radius
		if !vecApprox(c.Normal, mgl64.Vec2{1, 0}, 1e-9) {
			t.Errorf("normal = %v, want (1,0)", c.Normal)
		}
		if !vmath.ApproxEqual(c.Depth, 3, 1e-9) {
			t.Errorf("depth = %v, want 3", c.Depth)
		}
	})

	t.Run("Circle clear of the box", func(t *testing.T) {
		box := boxAt(0, 0, 10, 10)
		circle := circleAt(10, 0, 3)
		if _, hit := collide(box, circle); hit {
			t.Error("expected no contact")
		}
	})

	t.Run("Corner contact", func(t *testing.T) {
		box := boxAt(0, 0, 10, 10)
		circle := circleAt(7, 7, 3)

		c, hit := collide(box, circle)
		if !hit {
			t.Fatal("expected contact")
		}
		// Closest corner is (5,5), center sits on its diagonal
		want := mgl64.Vec2{2, 2}.Normalize()
		if !vecApprox(c.Normal, want, 1e-9) {
			t.Errorf("normal = %v, want %v", c.Normal, want)
		}
	})
}

// TestCollideMirrorSymmetry verifies the a/b swap invariant: testing the pair
// in either order yields the same contact with the normal flipped
func TestCollideMirrorSymmetry(t *testing.T) {
	pairs := []struct {
		name string
		a, b *Shape
	}{
		{"Circle vs circle", circleAt(0, 0, 10), circleAt(15, 0, 10)},
		{"Box vs box", boxAt(0, 0, 10, 10), boxAt(9, 3, 10, 10)},
		{"Box vs circle", boxAt(0, 0, 10, 10), circleAt(7, 0, 3)},
		{"Circle vs box", circleAt(7, 0, 3), boxAt(0, 0, 10, 10)},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			forward, hitF := collide(tt.a, tt.b)
			backward, hitB := collide(tt.b, tt.a)
			if hitF != hitB {
				t.Fatalf("asymmetric detection: %v vs %v", hitF, hitB)
			}
			if !hitF {
				return
			}
			if !vecApprox(forward.Normal, backward.Normal.Mul(-1), 1e-9) {
				t.Errorf("normals not mirrored: %v vs %v", forward.Normal, backward.Normal)
			}
			if !vmath.ApproxEqual(forward.Depth, backward.Depth, 1e-9) {
				t.Errorf("depth differs: %v vs %v", forward.Depth, backward.Depth)
			}
		})
	}
}

func TestCollideScaledShapes(t *testing.T) {
	// A unit circle scaled 3x collides like a radius-3 circle
	a := circleAt(0, 0, 1)
	a.Transform.Scale = mgl64.Vec2{3, 3}
	a.refreshBounds()
	b := circleAt(5, 0, 3)

	c, hit := collide(a, b)
	if !hit {
		t.Fatal("expected contact")
	}
	if !vmath.ApproxEqual(c.Depth, 1, 1e-9) {
		t.Errorf("depth = %v, want 1", c.Depth)
	}
}

// A negative radius is a configuration error and must behave like its
// magnitude; depth stays >= 0 so correction still separates the pair
func TestCollideNegativeRadius(t *testing.T) {
	a := circleAt(0, 0, -5)
	b := circleAt(3, 0, -5)

	c, hit := collide(a, b)
	if !hit {
		t.Fatal("expected contact")
	}
	if c.Depth < 0 {
		t.Fatalf("depth = %v, must never be negative", c.Depth)
	}
	if !vmath.ApproxEqual(c.Depth, 7, 1e-9) {
		t.Errorf("depth = %v, want 7 (radii read as magnitude)", c.Depth)
	}
	if !vecApprox(c.Normal, mgl64.Vec2{1, 0}, 1e-9) {
		t.Errorf("normal = %v, want (1,0)", c.Normal)
	}

	// Same policy against a box
	box := boxAt(10, 0, 4, 4)
	neg := circleAt(14, 0, -3)
	c, hit = collide(box, neg)
	if !hit {
		t.Fatal("expected box-circle contact")
	}
	if c.Depth < 0 {
		t.Errorf("box-circle depth = %v, must never be negative", c.Depth)
	}
}

func vecApprox(a, b mgl64.Vec2, eps float64) bool {
	return vmath.ApproxEqual(a.X(), b.X(), eps) && vmath.ApproxEqual(a.Y(), b.Y(), eps)
}
