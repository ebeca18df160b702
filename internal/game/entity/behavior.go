package entity

// Behavior is a capability attached to an Object. The owner calls
// OnSimulationStep once per frame in attach order.
type Behavior interface {
	// Name identifies the behavior on its owner. Names are unique per object.
	Name() string
	OnAttach(owner *Object)
	OnSimulationStep(owner *Object, dt float64)
	OnDetach(owner *Object)
}
