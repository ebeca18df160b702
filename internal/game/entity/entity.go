// Package entity implements simulated objects and the behaviors attached to them.
package entity

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// ErrDuplicateBehavior is returned when attaching a behavior whose name is
// already taken on the object.
var ErrDuplicateBehavior = errors.New("entity: behavior already attached")

// Object is a positioned, sized object. X and Y are the object's origin in
// world coordinates; the drawable box starts OriginX/OriginY before it.
type Object struct {
	ID   uint32
	Name string

	X, Y  float64
	Angle float64 // degrees

	Width   float64
	Height  float64
	OriginX float64
	OriginY float64

	behaviors []Behavior
}

// NewObject creates an object at the given position.
func NewObject(id uint32, name string, x, y float64) *Object {
	return &Object{
		ID:   id,
		Name: name,
		X:    x,
		Y:    y,
	}
}

// SetPosition moves the object.
func (o *Object) SetPosition(x, y float64) {
	o.X = x
	o.Y = y
}

// Position returns the object's position.
func (o *Object) Position() gpmath.Vec2 {
	return gpmath.Vec2{X: o.X, Y: o.Y}
}

// SetSize sets the object's size and the position of its origin inside it.
func (o *Object) SetSize(width, height, originX, originY float64) {
	o.Width = width
	o.Height = height
	o.OriginX = originX
	o.OriginY = originY
}

// DrawableX returns the left edge of the object's box.
func (o *Object) DrawableX() float64 {
	return o.X - o.OriginX
}

// DrawableY returns the top edge of the object's box.
func (o *Object) DrawableY() float64 {
	return o.Y - o.OriginY
}

// AABB returns the object's box in world coordinates. Rotation is ignored.
func (o *Object) AABB() gpmath.AABB {
	return gpmath.NewAABB(o.DrawableX(), o.DrawableY(), o.Width, o.Height)
}

// RotateTowardAngle turns the object toward target by at most speed*dt
// degrees along the shortest direction. A speed of 0 sets the angle directly.
func (o *Object) RotateTowardAngle(target, speed, dt float64) {
	if speed == 0 {
		o.Angle = target
		return
	}

	diff := gpmath.AngleDifference(o.Angle, target)
	step := speed * dt
	if step >= abs(diff) {
		o.Angle = target
		return
	}
	if diff < 0 {
		step = -step
	}
	o.Angle += step
}

// Attach adds a behavior and calls its OnAttach.
func (o *Object) Attach(b Behavior) error {
	if o.Behavior(b.Name()) != nil {
		return fmt.Errorf("%w: %q on object %d", ErrDuplicateBehavior, b.Name(), o.ID)
	}
	o.behaviors = append(o.behaviors, b)
	b.OnAttach(o)
	return nil
}

// Detach removes a behavior by name and calls its OnDetach. It reports
// whether the behavior was attached.
func (o *Object) Detach(name string) bool {
	i := slices.IndexFunc(o.behaviors, func(b Behavior) bool { return b.Name() == name })
	if i < 0 {
		return false
	}
	b := o.behaviors[i]
	o.behaviors = slices.Delete(o.behaviors, i, i+1)
	b.OnDetach(o)
	return true
}

// DetachAll detaches every behavior, most recently attached first.
func (o *Object) DetachAll() {
	for len(o.behaviors) > 0 {
		o.Detach(o.behaviors[len(o.behaviors)-1].Name())
	}
}

// Behavior returns the attached behavior with the given name, or nil.
func (o *Object) Behavior(name string) Behavior {
	for _, b := range o.behaviors {
		if b.Name() == name {
			return b
		}
	}
	return nil
}

// Behaviors returns the attached behaviors in attach order.
func (o *Object) Behaviors() []Behavior {
	return slices.Clone(o.behaviors)
}

// Step runs one simulation step of every attached behavior.
func (o *Object) Step(dt float64) {
	for _, b := range o.behaviors {
		b.OnSimulationStep(o, dt)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Manager manages all objects of a scene.
type Manager struct {
	objects map[uint32]*Object
	nextID  uint32
}

// NewManager creates a new object manager.
func NewManager() *Manager {
	return &Manager{
		objects: make(map[uint32]*Object),
		nextID:  1,
	}
}

// Spawn creates an object with the next free ID and adds it.
func (m *Manager) Spawn(name string, x, y float64) *Object {
	for m.objects[m.nextID] != nil {
		m.nextID++
	}
	o := NewObject(m.nextID, name, x, y)
	m.nextID++
	m.Add(o)
	return o
}

// Add adds an object, replacing any object with the same ID.
func (m *Manager) Add(o *Object) {
	m.objects[o.ID] = o
}

// Remove removes an object.
func (m *Manager) Remove(id uint32) {
	delete(m.objects, id)
}

// Get returns an object by ID.
func (m *Manager) Get(id uint32) *Object {
	return m.objects[id]
}

// Update steps every object in ID order.
func (m *Manager) Update(dt float64) {
	for _, o := range m.All() {
		o.Step(dt)
	}
}

// All returns all objects sorted by ID.
func (m *Manager) All() []*Object {
	result := make([]*Object, 0, len(m.objects))
	for _, o := range m.objects {
		result = append(result, o)
	}
	slices.SortFunc(result, func(a, b *Object) int { return cmp.Compare(a.ID, b.ID) })
	return result
}

// Count returns the total number of objects.
func (m *Manager) Count() int {
	return len(m.objects)
}

// Clear removes all objects.
func (m *Manager) Clear() {
	m.objects = make(map[uint32]*Object)
	m.nextID = 1
}
