package bounds

import (
	"slices"
	"testing"

	"github.com/gogpu/displaylist/geom"
)

func forEachType(t *testing.T, fn func(t *testing.T, a Accumulator)) {
	for _, typ := range []Type{TypeRect, TypeRTree} {
		t.Run(typ.String(), func(t *testing.T) {
			fn(t, New(typ))
		})
	}
}

func TestAccumulateIgnoresDegenerate(t *testing.T) {
	forEachType(t, func(t *testing.T, a Accumulator) {
		a.Accumulate(geom.MakeLTRB(0, 0, 10, 10), 0)
		a.Accumulate(geom.MakeLTRB(50, 50, 50, 60), 1)
		a.Accumulate(geom.MakeLTRB(80, 80, 70, 90), 2)
		if got, want := a.Bounds(), geom.MakeLTRB(0, 0, 10, 10); got != want {
			t.Errorf("Bounds() = %v, want %v", got, want)
		}
	})
}

func TestEmptyAccumulator(t *testing.T) {
	forEachType(t, func(t *testing.T, a Accumulator) {
		if got := a.Bounds(); !got.IsEmpty() {
			t.Errorf("Bounds() = %v, want empty", got)
		}
		a.Save()
		a.Restore()
		if got := a.Bounds(); !got.IsEmpty() {
			t.Errorf("Bounds() after empty save/restore = %v, want empty", got)
		}
	})
}

func TestSaveRestoreUnions(t *testing.T) {
	forEachType(t, func(t *testing.T, a Accumulator) {
		a.Accumulate(geom.MakeLTRB(0, 0, 10, 10), 0)
		a.Save()
		a.Accumulate(geom.MakeLTRB(20, 20, 30, 30), 1)
		if got, want := a.Bounds(), geom.MakeLTRB(20, 20, 30, 30); got != want {
			t.Errorf("nested Bounds() = %v, want %v", got, want)
		}
		a.Restore()
		if got, want := a.Bounds(), geom.MakeLTRB(0, 0, 30, 30); got != want {
			t.Errorf("Bounds() = %v, want %v", got, want)
		}
	})
}

func TestRestoreMappedAndClipped(t *testing.T) {
	outset := func(r geom.Rect) (geom.Rect, bool) { return r.Outset(5, 5), true }
	clip := geom.MakeLTRB(0, 0, 28, 100)

	forEachType(t, func(t *testing.T, a Accumulator) {
		a.Save()
		a.Accumulate(geom.MakeLTRB(10, 10, 20, 20), 0)
		if !a.RestoreMapped(outset, &clip) {
			t.Fatal("RestoreMapped() = false, want true")
		}
		if got, want := a.Bounds(), geom.MakeLTRB(5, 5, 25, 25); got != want {
			t.Errorf("Bounds() = %v, want %v", got, want)
		}

		a.Save()
		a.Accumulate(geom.MakeLTRB(20, 20, 40, 40), 1)
		a.RestoreMapped(nil, &clip)
		if got, want := a.Bounds(), geom.MakeLTRB(5, 5, 28, 40); got != want {
			t.Errorf("Bounds() after clip = %v, want %v", got, want)
		}
	})
}

func TestRestoreMappedFailure(t *testing.T) {
	fail := func(geom.Rect) (geom.Rect, bool) { return geom.Rect{}, false }
	forEachType(t, func(t *testing.T, a Accumulator) {
		a.Save()
		a.Accumulate(geom.MakeLTRB(10, 10, 20, 20), 0)
		if a.RestoreMapped(fail, nil) {
			t.Error("RestoreMapped() = true, want false")
		}
	})
}

func TestRTreeKeepsIndices(t *testing.T) {
	a := NewRTree()
	a.Accumulate(geom.MakeLTRB(0, 0, 10, 10), 0)
	a.Save()
	a.Accumulate(geom.MakeLTRB(100, 100, 110, 110), 2)
	a.Accumulate(geom.MakeLTRB(15, 0, 20, 5), 3)
	clip := geom.MakeLTRB(0, 0, 50, 50)
	a.RestoreMapped(nil, &clip)
	a.Accumulate(geom.MakeLTRB(30, 30, 40, 40), 5)

	tree := a.BuildRTree()
	if got := tree.LeafCount(); got != 3 {
		t.Errorf("LeafCount() = %d, want 3", got)
	}
	if got := tree.Search(geom.MakeLTRB(0, 0, 50, 50)); !slices.Equal(got, []int{0, 3, 5}) {
		t.Errorf("Search() = %v, want [0 3 5]", got)
	}
}

func TestRTreeFailedMappingBecomesClip(t *testing.T) {
	a := NewRTree()
	a.Save()
	a.Accumulate(geom.MakeLTRB(10, 10, 20, 20), 4)
	clip := geom.MakeLTRB(0, 0, 100, 100)
	a.RestoreMapped(func(geom.Rect) (geom.Rect, bool) { return geom.Rect{}, false }, &clip)

	tree := a.BuildRTree()
	if tree.LeafCount() != 1 || tree.Rect(0) != clip || tree.Index(0) != 4 {
		t.Errorf("leaves = %d, first %v index %d, want 1 leaf %v index 4",
			tree.LeafCount(), tree.Rect(0), tree.Index(0), clip)
	}
}
