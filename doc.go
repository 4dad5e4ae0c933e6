// Package goku is a deterministic 2D simulation core for small games built
// on [Ebitengine].
//
// Goku owns the frame: it polls input, moves entities under a constant-speed
// rigid body law, resolves collisions against a static tile world, follows
// the player with a camera, advances sprite-sheet animations, simulates
// particles and ticks behaviour trees, always in the same order. Drawing and
// input are reached through two small interfaces, [RenderSink] and
// [InputSource], so the whole core runs headless in tests. The
// goku/backend package implements both on top of Ebitengine.
//
// # Quick start
//
// The simplest way to get started is to describe a scene in YAML and hand it
// to the runner in goku/backend:
//
//	spec, err := goku.LoadSpec[goku.SceneSpec]("scene.yaml")
//	// ...
//	scene, err := goku.BuildScene(spec, goku.BuildEnv{
//		BaseDir: ".",
//		Loader:  backend.TextureLoader(),
//	})
//	// ...
//	backend.Run(scene, backend.RunConfig{Title: "My Game"})
//
// For full control, build the scene by hand and call [Scene.Update] and
// [Scene.Render] yourself:
//
//	scene := goku.NewScene(goku.SceneConfig{FixedStep: 1.0 / 60})
//	scene.World, _ = goku.LoadWorldFile("map.txt", goku.WorldConfig{})
//	scene.AddEntity(goku.NewEntity("hero", goku.Point{X: 100, Y: 100}, 0, 0))
//	for scene.Update() == nil {
//		scene.Render(sink)
//	}
//
// # Frame order
//
// [Scene.Update] runs input, entity motion and collision, the falling-piece
// board, the camera, animations, particles, behaviour trees, parallax and
// the profiler, then any queued hot reloads. It returns [ErrQuit] once a
// quit event or Escape has been seen.
//
// # Motion and collision
//
// A [RigidBody] accumulates forces into an acceleration, integrates it over
// the frame delta and then rescales the velocity to its Speed. Forces only
// steer. Entities try to move by their velocity truncated to whole pixels; a
// [CollisionPolicy] decides what happens. [RejectAll] cancels the whole move
// on any overlap. [AxisSeparated] probes each axis one step ahead and is
// used by the falling-piece [Board].
//
// # Tile maps
//
// A tile map is a text grid of unsigned integers separated by whitespace,
// one row per line. Tiles whose code equals the solid code (2 by default)
// become colliders of TileSize×TileSize (82 by default) at
// (col*TileSize, row*TileSize).
//
//	0 0 0
//	0 2 0
//
// # Behaviour
//
// A [BehaviourTree] is a stateless tree of [Selector], [Sequence] and leaf
// nodes. Leaves are Go callbacks ([Action]) or tengo scripts
// ([CompileScript]) that assign "success", "failure" or "running" to the
// status global. Trees can be described in YAML and built with [BuildTree].
//
// # Hot reload
//
// [NewWatcher] watches scene files with fsnotify. [Scene.Watch] queues the
// resulting reloads, which run at the end of the next Update:
//
//	w, _ := goku.NewWatcher(".")
//	scene.Watch(w, goku.SceneReloader("scene.yaml", spec, env))
//
// # ECS
//
// [FrameEvent]s can be forwarded to a [Donburi] world through the adapter in
// goku/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package goku
