package obstacle

import (
	"testing"

	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

func ids(obstacles []*Obstacle) []ID {
	out := make([]ID, len(obstacles))
	for i, o := range obstacles {
		out[i] = o.ID
	}
	return out
}

func sameIDs(a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegistryQueryNear(t *testing.T) {
	r := NewRegistry()
	wall := r.Add(gpmath.NewAABB(100, 0, 20, 200), true, 0)
	mud := r.Add(gpmath.NewAABB(0, 0, 40, 40), false, 3)
	far := r.Add(gpmath.NewAABB(1000, 1000, 10, 10), true, 0)

	tests := []struct {
		name   string
		x, y   float64
		radius float64
		want   []ID
	}{
		{"inside mud", 20, 20, 1, []ID{mud.ID}},
		{"between", 70, 20, 31, []ID{wall.ID, mud.ID}},
		{"corner gap", 45, 45, 6, nil},
		{"corner reach", 45, 45, 7.1, []ID{mud.ID}},
		{"far away", 1005, 1005, 2, []ID{far.ID}},
		{"nothing", 500, 500, 50, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(r.QueryNear(tt.x, tt.y, tt.radius, nil))
			want := tt.want
			// Results are sorted by ID.
			if len(want) == 2 && want[0] > want[1] {
				want = []ID{want[1], want[0]}
			}
			if !sameIDs(got, want) {
				t.Errorf("QueryNear(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.radius, got, want)
			}
		})
	}
}

func TestRegistryQueryAppends(t *testing.T) {
	r := NewRegistry()
	a := r.Add(gpmath.NewAABB(0, 0, 10, 10), false, 1)

	buf := []*Obstacle{{ID: 99}}
	buf = r.QueryNear(5, 5, 1, buf)
	if len(buf) != 2 || buf[0].ID != 99 || buf[1] != a {
		t.Errorf("expected query to append after existing entries, got %v", ids(buf))
	}
}

func TestRegistryQueryAABB(t *testing.T) {
	r := NewRegistry()
	a := r.Add(gpmath.NewAABB(0, 0, 10, 10), true, 0)
	b := r.Add(gpmath.NewAABB(20, 0, 10, 10), true, 0)

	got := ids(r.QueryAABB(gpmath.NewAABB(5, 5, 20, 2), nil))
	if !sameIDs(got, []ID{a.ID, b.ID}) {
		t.Errorf("QueryAABB = %v, want both obstacles", got)
	}

	got = ids(r.QueryAABB(gpmath.NewAABB(12, 0, 4, 4), nil))
	if len(got) != 0 {
		t.Errorf("QueryAABB in the gap = %v, want none", got)
	}
}

func TestRegistryUpdateAndRemove(t *testing.T) {
	r := NewRegistry()
	o := r.Add(gpmath.NewAABB(0, 0, 10, 10), true, 0)

	o.Bounds = gpmath.NewAABB(200, 200, 10, 10)
	if !r.Update(o) {
		t.Fatal("Update returned false for a registered obstacle")
	}
	if got := r.QueryNear(5, 5, 2, nil); len(got) != 0 {
		t.Errorf("obstacle still found at its old position")
	}
	if got := r.QueryNear(205, 205, 2, nil); len(got) != 1 {
		t.Errorf("obstacle not found at its new position")
	}

	if !r.Remove(o.ID) {
		t.Fatal("Remove returned false for a registered obstacle")
	}
	if r.Remove(o.ID) {
		t.Error("second Remove should report false")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
	if r.Update(o) {
		t.Error("Update should fail for a removed obstacle")
	}
	if _, ok := r.Get(o.ID); ok {
		t.Error("Get should fail for a removed obstacle")
	}
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 5; i++ {
		r.Add(gpmath.NewAABB(float64(i*20), 0, 10, 10), true, 0)
	}
	r.Close()
	if r.Len() != 0 {
		t.Errorf("expected empty registry after Close, got %d", r.Len())
	}
	if got := r.QueryNear(40, 5, 100, nil); len(got) != 0 {
		t.Errorf("expected no results after Close, got %d", len(got))
	}
}

func TestObstacleSetCostClamps(t *testing.T) {
	r := NewRegistry()
	o := r.Add(gpmath.NewAABB(0, 0, 1, 1), false, -4)
	if o.Cost != 0 {
		t.Errorf("expected negative cost to clamp to 0, got %v", o.Cost)
	}
	o.SetCost(2.5)
	if o.Cost != 2.5 {
		t.Errorf("expected cost 2.5, got %v", o.Cost)
	}
}

func TestRegistryImplementsSources(t *testing.T) {
	var _ Source = (*Registry)(nil)
	var _ AABBQuerier = (*Registry)(nil)
}
