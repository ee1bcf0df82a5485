// Command dldump records a sample display list and prints its records,
// bounds and culling results.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/geom"
	"github.com/gogpu/displaylist/paint"
	"github.com/gogpu/displaylist/text"
)

func main() {
	var (
		width   = flag.Int("width", 800, "cull width")
		height  = flag.Int("height", 600, "cull height")
		rtree   = flag.Bool("rtree", true, "build a spatial index")
		cull    = flag.String("cull", "", "replay cull rect as l,t,r,b")
		verbose = flag.Bool("v", false, "log every dispatched op")
	)
	flag.Parse()

	if *verbose {
		displaylist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	shaper, err := text.NewShaper(goregular.TTF)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	b := displaylist.NewBuilder(
		displaylist.WithCullRect(geom.MakeWH(float32(*width), float32(*height))),
		displaylist.WithRTree(*rtree),
	)
	if err := drawScene(b, shaper); err != nil {
		log.Fatalf("Failed to record: %v", err)
	}
	dl := b.Build()

	printSummary(dl)

	if *cull != "" {
		var r geom.Rect
		if _, err := fmt.Sscanf(*cull, "%g,%g,%g,%g", &r.Left, &r.Top, &r.Right, &r.Bottom); err != nil {
			log.Fatalf("Invalid -cull %q: %v", *cull, err)
		}
		fmt.Printf("culled %v: %v\n", r, dl.CulledIndices(r))
		dl.DispatchCulled(displaylist.NewLoggingDispatcher(nil), r)
		return
	}
	dl.Dispatch(displaylist.NewLoggingDispatcher(nil))
}

func drawScene(b *displaylist.Builder, shaper *text.Shaper) error {
	// Background
	b.DrawColor(paint.Hex("#1a1a2e"), paint.BlendSrc)

	// Cards
	b.SetAntiAlias(true)
	for i := range 3 {
		b.Save()
		b.Translate(float32(40+i*250), 40)
		b.SetColor(paint.Hex("#16213e"))
		b.DrawShadow(geom.NewRRectPath(geom.MakeRRectXY(geom.MakeWH(220, 140), 12, 12)),
			paint.Black, 6, false, 1)
		b.DrawRRect(geom.MakeRRectXY(geom.MakeWH(220, 140), 12, 12))
		b.SetColor(paint.Hex("#e94560"))
		b.DrawCircle(geom.Pt(40, 40), 20)
		b.Restore()
	}

	// Faded group
	group := displaylist.NewBuilder()
	group.SetStyle(paint.StyleStroke)
	group.SetStrokeWidth(4)
	group.SetColor(paint.Hex("#0f3460"))
	group.DrawPath(geom.NewPath().MoveTo(0, 0).CubicTo(60, -40, 120, 40, 180, 0))
	b.Save()
	b.Translate(60, 300)
	b.DrawDisplayList(group.Build(), 0.5)
	b.Restore()

	// Blurred layer
	b.SetImageFilter(&paint.BlurImageFilter{SigmaX: 4, SigmaY: 4})
	b.SaveLayer(nil, displaylist.RendersWithAttributes, nil)
	b.SetImageFilter(nil)
	b.SetColor(paint.Hex("#533483"))
	b.DrawOval(geom.MakeLTRB(400, 260, 560, 360))
	b.Restore()

	// Label
	blob, err := shaper.Shape("displaylist", 24)
	if err != nil {
		return err
	}
	b.SetColor(paint.White)
	b.DrawTextBlob(blob, 40, 500)
	return nil
}

func printSummary(dl *displaylist.DisplayList) {
	fmt.Printf("records=%d ops=%d nested_ops=%d bytes=%d depth=%d\n",
		dl.RecordCount(), dl.OpCount(false), dl.OpCount(true), dl.Bytes(true), dl.TotalDepth())
	fmt.Printf("bounds=%v rtree=%v group_opacity=%v modifies_transparent_black=%v\n",
		dl.Bounds(), dl.HasRTree(), dl.CanApplyGroupOpacity(), dl.ModifiesTransparentBlack())
	for i := range dl.RecordCount() {
		fmt.Printf("%4d  %-10s %s\n", i, dl.OpCategory(i), dl.OpType(i))
	}
}
