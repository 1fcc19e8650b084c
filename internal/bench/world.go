package bench

// Handle is an opaque, engine-owned body reference. Only the World that
// issued a Handle may interpret it.
type Handle any

// Material holds the contact properties of a dynamic body.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

// CircleDef requests a dynamic, non-rotating circle.
type CircleDef struct {
	Position Vec2
	Velocity Vec2
	Radius   float64
	Material Material
}

// WallDef requests a static, zero-density box centred at Center.
type WallDef struct {
	Center     Vec2
	HalfWidth  float64
	HalfHeight float64
}

// Iterations are the constraint solver passes per step.
type Iterations struct {
	Velocity int
	Position int
}

// World is the rigid-body physics engine contract consumed by the harness.
type World interface {
	// Name identifies the engine in reports.
	Name() string

	CreateCircle(def CircleDef) (Handle, error)
	CreateWall(def WallDef) (Handle, error)

	// SetTag attaches id as the back-reference of h; Tag retrieves it.
	SetTag(h Handle, id BodyID)
	Tag(h Handle) (BodyID, bool)

	Position(h Handle) Vec2

	// Step advances the simulation by a fixed dt.
	Step(dt float64, it Iterations) error

	// QueryRange appends to dst every handle whose broad-phase bounds
	// overlap box, without duplicates and in no particular order.
	QueryRange(box AABB, dst []Handle) []Handle

	Close() error
}
