package world

import "github.com/Faultbox/gridpath/internal/pathfinding"

// Single-setting accessors. Setters take effect on the next MoveTo or
// Step; invalid values make MoveTo fail until corrected.

func (c *PathfindingController) Speed() float64         { return c.speed }
func (c *PathfindingController) SetSpeed(speed float64) { c.speed = speed }

func (c *PathfindingController) Acceleration() float64 { return c.settings.Acceleration }
func (c *PathfindingController) SetAcceleration(acceleration float64) {
	c.settings.Acceleration = acceleration
}

func (c *PathfindingController) MaxSpeed() float64         { return c.settings.MaxSpeed }
func (c *PathfindingController) SetMaxSpeed(speed float64) { c.settings.MaxSpeed = speed }

func (c *PathfindingController) AngularMaxSpeed() float64 { return c.settings.AngularMaxSpeed }
func (c *PathfindingController) SetAngularMaxSpeed(speed float64) {
	c.settings.AngularMaxSpeed = speed
}

func (c *PathfindingController) AngleOffset() float64          { return c.settings.AngleOffset }
func (c *PathfindingController) SetAngleOffset(offset float64) { c.settings.AngleOffset = offset }

func (c *PathfindingController) ExtraBorder() float64          { return c.settings.ExtraBorder }
func (c *PathfindingController) SetExtraBorder(border float64) { c.settings.ExtraBorder = border }

func (c *PathfindingController) DiagonalsAllowed() bool       { return c.settings.AllowDiagonals }
func (c *PathfindingController) SetAllowDiagonals(allow bool) { c.settings.AllowDiagonals = allow }

func (c *PathfindingController) ObjectRotated() bool         { return c.settings.RotateObject }
func (c *PathfindingController) SetRotateObject(rotate bool) { c.settings.RotateObject = rotate }

func (c *PathfindingController) CellWidth() float64         { return c.settings.CellWidth }
func (c *PathfindingController) SetCellWidth(width float64) { c.settings.CellWidth = width }

func (c *PathfindingController) CellHeight() float64          { return c.settings.CellHeight }
func (c *PathfindingController) SetCellHeight(height float64) { c.settings.CellHeight = height }

func (c *PathfindingController) GridOffsetX() float64 { return c.settings.GridOffsetX }
func (c *PathfindingController) GridOffsetY() float64 { return c.settings.GridOffsetY }

func (c *PathfindingController) SetGridOffset(x, y float64) {
	c.settings.GridOffsetX = x
	c.settings.GridOffsetY = y
}

func (c *PathfindingController) MaxComplexityFactor() float64 {
	return c.settings.MaxComplexityFactor
}

func (c *PathfindingController) SetMaxComplexityFactor(factor float64) {
	c.settings.MaxComplexityFactor = factor
}

// CollisionMethod returns the configured collision method name.
func (c *PathfindingController) CollisionMethod() string { return c.collision.String() }

// SetCollisionMethod selects "legacy" or "aabb".
func (c *PathfindingController) SetCollisionMethod(name string) error {
	method, err := pathfinding.ParseCollisionMethod(name)
	if err != nil {
		return err
	}
	c.collision = method
	c.settings.CollisionMethod = method.String()
	return nil
}
