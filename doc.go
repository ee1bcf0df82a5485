// Package displaylist records 2D drawing commands into an immutable,
// replayable display list.
//
// # Overview
//
// A Builder accepts drawing calls (attribute changes, save and restore,
// transforms, clips and draws) and packs them into a compact byte
// buffer. Build returns a DisplayList: an immutable recording with its
// bounds, an optional spatial index, and a few properties a compositor
// needs, such as whether a group opacity can be pushed down to its ops.
//
// A DisplayList replays into any Dispatcher, in full or culled to a
// rectangle. Builder is itself a Dispatcher, so replaying a list into a
// fresh builder produces an equal list.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/displaylist"
//	    "github.com/gogpu/displaylist/geom"
//	    "github.com/gogpu/displaylist/paint"
//	)
//
//	b := displaylist.NewBuilder(displaylist.WithRTree(true))
//	b.SetColor(paint.Hex("#e94560"))
//	b.DrawRect(geom.MakeLTRB(10, 10, 110, 110))
//	b.Save()
//	b.Translate(200, 0)
//	b.DrawCircle(geom.Pt(50, 50), 40)
//	b.Restore()
//	dl := b.Build()
//
//	dl.DispatchCulled(backend, geom.MakeLTRB(0, 0, 150, 150))
//
// # Recording
//
// Attribute setters only record a change. Save is deferred until a
// transform or clip inside it is recorded, so a Save and Restore that
// protect nothing produce no records. Transforms that leave the matrix
// unchanged are dropped. Draws are bounded in device space; a draw that
// falls entirely outside the current clip is not recorded.
//
// # Records
//
// Each record starts with a 32-bit header holding the op type in the low
// 8 bits and the record size in the high 24 bits. Sizes are multiples of
// 8. Shared objects (paths, effects, images, text blobs, sub-lists) are
// held by reference and kept alive by the list.
//
// # Concurrency
//
// A Builder is not safe for concurrent use. A DisplayList is immutable
// and may be replayed from any number of goroutines, subject to
// IsUIThreadSafe for lists holding thread-bound images.
//
// # Packages
//
//   - geom: points, rects, rounded rects, 4x4 matrices and paths
//   - paint: colors, blend modes and effect objects
//   - rtree: the spatial index over recorded ops
//   - text: shaped glyph runs (text blobs)
package displaylist
