// Package bench provides the core primitives shared by the benchmark harness.
//
// The package defines the value types and collaborator contracts that the
// rest of the harness is written against:
//
//   - [Vec2]: 2D vector in world or screen space
//   - [AABB]: axis-aligned box described by min/max corners
//   - [Color]: RGBA render color
//   - [BodyID]: stable integer back-reference attached to engine bodies
//   - [World]: rigid-body physics engine contract
//
// # Errors
//
// Every failure the harness can report wraps one of [ErrConfiguration],
// [ErrResourceAcquisition] or [ErrCollaborator]; test with errors.Is.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. The harness runs on a
// single frame-locked goroutine.
package bench
