// Package stagelayout is an orchestra stage layout editor built on
// [Ebitengine].
//
// An [Editor] holds an ordered set of tokens (conductor podium, chairs,
// piano and bass stools, harp, percussion, music stands) placed on a fixed
// size stage. Tokens are added from a toolbar palette, selected with clicks
// and Shift-clicks, dragged in groups with optional 5px snapping, relabeled,
// recolored, copied and pasted, and deleted after confirmation.
//
// # Quick start
//
// The editor implements [ebiten.Game]:
//
//	ed := stagelayout.NewEditor(stagelayout.Options{Store: st})
//	if _, err := ed.Load(ctx); err != nil {
//		return err
//	}
//	w, h := ed.ScreenSize()
//	ebiten.SetWindowSize(w, h)
//	return ebiten.RunGame(ed)
//
// # Persistence
//
// The layout is saved as a JSON [Document] under a single slot in a
// [store.Store]. The document format keeps CSS pixel strings ("40px") and
// CSS colors so older saves load unchanged. Stores exist for local files,
// memory, SQLite, MySQL, PostgreSQL, Redis and MongoDB.
//
// # Export
//
// [Editor.Export] writes the stage as a PNG at the end of the next Draw.
// [Rasterize] produces the same picture without a window, for the command
// line and for tests.
//
// # Scripting
//
// A [ScriptRunner] replays a JSON session through the same input paths as
// a real user, one step per frame, which makes the editor drivable from CI.
//
// [Ebitengine]: https://ebitengine.org
package stagelayout
