package entity

import (
	"errors"
	"math"
	"testing"
)

type recordingBehavior struct {
	name   string
	events *[]string
	steps  int
}

func (b *recordingBehavior) Name() string { return b.name }

func (b *recordingBehavior) OnAttach(*Object) { *b.events = append(*b.events, "attach "+b.name) }

func (b *recordingBehavior) OnSimulationStep(_ *Object, _ float64) {
	b.steps++
	*b.events = append(*b.events, "step "+b.name)
}

func (b *recordingBehavior) OnDetach(*Object) { *b.events = append(*b.events, "detach "+b.name) }

func TestObjectBehaviors(t *testing.T) {
	var events []string
	o := NewObject(1, "agent", 0, 0)
	a := &recordingBehavior{name: "a", events: &events}
	b := &recordingBehavior{name: "b", events: &events}

	if err := o.Attach(a); err != nil {
		t.Fatalf("Attach(a) error = %v", err)
	}
	if err := o.Attach(b); err != nil {
		t.Fatalf("Attach(b) error = %v", err)
	}
	if err := o.Attach(&recordingBehavior{name: "a", events: &events}); !errors.Is(err, ErrDuplicateBehavior) {
		t.Errorf("duplicate Attach error = %v, want ErrDuplicateBehavior", err)
	}
	if o.Behavior("b") != b {
		t.Error("Behavior(b) did not return the attached behavior")
	}

	o.Step(0.1)
	if !o.Detach("a") {
		t.Error("Detach(a) = false")
	}
	if o.Detach("a") {
		t.Error("second Detach(a) = true")
	}
	o.Step(0.1)
	o.DetachAll()

	want := []string{"attach a", "attach b", "step a", "step b", "detach a", "step b", "detach b"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
	if len(o.Behaviors()) != 0 {
		t.Errorf("behaviors left after DetachAll: %d", len(o.Behaviors()))
	}
}

func TestObjectAABB(t *testing.T) {
	o := NewObject(1, "box", 100, 50)
	o.SetSize(30, 20, 15, 10)

	box := o.AABB()
	if box.Min.X != 85 || box.Min.Y != 40 || box.Max.X != 115 || box.Max.Y != 60 {
		t.Errorf("AABB = %+v", box)
	}
	if o.DrawableX() != 85 || o.DrawableY() != 40 {
		t.Errorf("drawable = (%v, %v)", o.DrawableX(), o.DrawableY())
	}
}

func TestRotateTowardAngle(t *testing.T) {
	tests := []struct {
		name         string
		from, target float64
		speed, dt    float64
		want         float64
	}{
		{"instant when speed is zero", 10, 170, 0, 0.016, 170},
		{"bounded step", 0, 90, 45, 1, 45},
		{"reaches target", 80, 90, 45, 1, 90},
		{"negative direction", 0, -90, 30, 1, -30},
		{"shortest way across 180", 170, -170, 10, 1, 180},
		{"no overshoot", 0, 5, 1000, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObject(1, "r", 0, 0)
			o.Angle = tt.from
			o.RotateTowardAngle(tt.target, tt.speed, tt.dt)
			if math.Abs(o.Angle-tt.want) > 1e-9 {
				t.Errorf("Angle = %v, want %v", o.Angle, tt.want)
			}
		})
	}
}

func TestCalculateDirection(t *testing.T) {
	tests := []struct {
		angle float64
		want  string
	}{
		{0, "E"},
		{22, "E"},
		{23, "SE"},
		{90, "S"},
		{180, "W"},
		{-90, "N"},
		{-45, "NE"},
		{270, "N"},
		{-135, "NW"},
	}
	for _, tt := range tests {
		if got := DirectionName(CalculateDirection(tt.angle)); got != tt.want {
			t.Errorf("direction(%v) = %s, want %s", tt.angle, got, tt.want)
		}
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	a := m.Spawn("a", 0, 0)
	b := m.Spawn("b", 1, 1)
	m.Add(NewObject(10, "fixed", 0, 0))

	if a.ID != 1 || b.ID != 2 {
		t.Errorf("spawned IDs = %d, %d", a.ID, b.ID)
	}
	if m.Count() != 3 {
		t.Errorf("Count = %d, want 3", m.Count())
	}

	var order []uint32
	for _, o := range m.All() {
		order = append(order, o.ID)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 10 {
		t.Errorf("All order = %v", order)
	}

	var events []string
	rb := &recordingBehavior{name: "r", events: &events}
	if err := b.Attach(rb); err != nil {
		t.Fatal(err)
	}
	m.Update(0.5)
	if rb.steps != 1 {
		t.Errorf("steps = %d, want 1", rb.steps)
	}

	m.Remove(1)
	if m.Get(1) != nil {
		t.Error("object 1 still present")
	}
	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count after Clear = %d", m.Count())
	}
}
