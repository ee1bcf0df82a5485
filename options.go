package displaylist

import "github.com/gogpu/displaylist/geom"

// BuilderOption configures a Builder during creation.
//
// Example:
//
//	// Unbounded recording, plain bounds
//	b := displaylist.NewBuilder()
//
//	// Recording for a 800x600 surface with a spatial index
//	b := displaylist.NewBuilder(
//	    displaylist.WithCullRect(geom.MakeWH(800, 600)),
//	    displaylist.WithRTree(true),
//	)
type BuilderOption func(*builderOptions)

// builderOptions holds optional configuration for Builder creation.
type builderOptions struct {
	cull  geom.Rect
	rtree bool
}

// defaultBuilderOptions returns the default builder options.
func defaultBuilderOptions() builderOptions {
	return builderOptions{
		cull: geom.LargestRect,
	}
}

// WithCullRect sets the initial clip of the recording. Content outside
// it is not recorded, and unbounded content reports it as its bounds.
// A rect with NaN edges records nothing.
func WithCullRect(r geom.Rect) BuilderOption {
	return func(o *builderOptions) {
		o.cull = r
	}
}

// WithRTree requests a spatial index over the recorded ops, enabling
// culled replay and RTree queries on the built list.
func WithRTree(enabled bool) BuilderOption {
	return func(o *builderOptions) {
		o.rtree = enabled
	}
}
