// Package backend runs a goku scene on [Ebitengine].
//
// [Run] opens a window and drives [goku.Scene.Update] and
// [goku.Scene.Render] from ebiten's game loop. The pieces it uses are
// exported for callers that want their own [ebiten.Game]:
//
//   - [Input] is a goku.InputSource reading ebiten's keyboard and mouse.
//   - [Sink] is a goku.RenderSink drawing into an *ebiten.Image.
//   - [TextureLoader] loads image files as *ebiten.Image textures.
//   - [TickClock] is a goku.Clock that advances one tick per Update.
//
// Usage:
//
//	game := backend.NewGame(scene, backend.RunConfig{Width: 800, Height: 600})
//	ebiten.RunGame(game)
//
// [Ebitengine]: https://ebitengine.org
package backend
