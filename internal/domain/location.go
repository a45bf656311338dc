package domain

// Represents a stop in a working set: either the fixed origin or a
// destination added by the user. Exactly one Location in a working set
// has IsOrigin set, and the origin is immutable for the session.
// Reordering a route never changes Location identity, only position.
type Location struct {
	ID       int
	Name     string
	Address  string
	CEP      string
	Coords   Coordinates
	IsOrigin bool
}
