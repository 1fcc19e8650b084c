// Package engine adapts third-party rigid-body engines to [bench.World].
//
//   - [Box2D]: github.com/ByteArena/box2d, queried through the world's
//     dynamic AABB tree (QueryAABB)
//   - [Chipmunk]: github.com/jakecoffman/cp, queried through the space's
//     bounding-box index (BBQuery)
//
// Both run with zero gravity. Back-references live in the engine's per-body
// user data slot as a [bench.BodyID]. Engine panics raised inside Step are
// reported as [bench.ErrCollaborator].
//
// # Example
//
//	reg := engine.NewRegistry()
//	world, err := reg.Open("box2d")
package engine
