package bp3d

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 1: trivial fit of a single cube into a bin far larger than
// it needs to be.
func TestScenarioTrivialFit(t *testing.T) {
	p := NewPacker()
	bin := NewBin("bin1", Vector3{5, 4, 3}, 100, 0, PutUnspecified)
	p.AddBin(bin)
	p.AddItem(NewItem("Box-1", "test", ShapeCube, Vector3{2, 2, 2}, 1, 1, 100, true, "red"))

	err := p.Pack()
	require.NoError(t, err)

	require.Len(t, bin.Items, 1)
	require.Equal(t, Vector3{0, 0, 0}, bin.Items[0].Position)
	require.Equal(t, WHD, bin.Items[0].Rotation)
	require.Empty(t, p.UnfitItems())
	require.Equal(t, [4]float64{100, 0, 0, 0}, bin.Gravity)
}

// Scenario 2 (example3): the heuristic is not optimal. All five cubes
// sum to exactly the bin's volume, yet packing them in the order given
// without reshuffling strands one of them. Mirrors upstream's own comment that
// swapping item 2's dimensions changes whether the whole set fits.
func TestScenarioOrderingCounterExample(t *testing.T) {
	p := NewPacker()
	bin := NewBin("bin1", Vector3{6, 1, 5}, 100, 0, PutGeneral)
	p.AddBin(bin)
	p.AddItems(
		NewItem("Box-1", "test", ShapeCube, Vector3{2, 1, 3}, 1, 1, 100, true, "yellow"),
		NewItem("Box-2", "test", ShapeCube, Vector3{3, 1, 2}, 1, 1, 100, true, "pink"),
		NewItem("Box-3", "test", ShapeCube, Vector3{2, 1, 3}, 1, 1, 100, true, "brown"),
		NewItem("Box-4", "test", ShapeCube, Vector3{2, 1, 3}, 1, 1, 100, true, "cyan"),
		NewItem("Box-5", "test", ShapeCube, Vector3{2, 1, 3}, 1, 1, 100, true, "olive"),
	)

	err := p.Pack(WithBiggerFirst(true), WithDistributeItems(false), WithFixPoint(true), WithCheckStable(true), WithSupportSurfaceRatio(0.75))
	require.NoError(t, err)

	require.Len(t, p.UnfitItems(), 1)
}

// Scenario 3 (example5): a thin 5x4x1 slab placed atop two narrower
// columns fails the support-ratio rule and the four-vertex fallback,
// so it lands in unfit_items.
func TestScenarioSupportRatioRule(t *testing.T) {
	p := NewPacker()
	bin := NewBin("bin1", Vector3{5, 4, 3}, 100, 0, PutUnspecified)
	p.AddBin(bin)
	p.AddItems(
		NewItem("Box-3a", "test", ShapeCube, Vector3{2, 5, 2}, 1, 1, 100, true, "pink"),
		NewItem("Box-3b", "test", ShapeCube, Vector3{2, 3, 2}, 1, 2, 100, true, "pink"),
		NewItem("Box-4", "test", ShapeCube, Vector3{5, 4, 1}, 1, 3, 100, true, "brown"),
	)

	err := p.Pack(WithBiggerFirst(true), WithDistributeItems(false), WithFixPoint(true), WithCheckStable(true), WithSupportSurfaceRatio(0.75))
	require.NoError(t, err)

	var names []string
	for _, it := range p.UnfitItems() {
		names = append(names, it.PartNo)
	}
	require.Contains(t, names, "Box-4")
}

// Scenario 4 (example6): nine cubes that all fit. With bigger-first
// ordering the 5x4x2 slab has the largest volume and is packed first,
// flat on the floor; every placement clears the support-ratio rule
// directly, so the four-vertex fallback is not reached here.
func TestScenarioFourVertexRule(t *testing.T) {
	p := NewPacker()
	bin := NewBin("bin1", Vector3{5, 4, 7}, 100, 0, PutUnspecified)
	p.AddBin(bin)
	p.AddItems(
		NewItem("Box-1", "test", ShapeCube, Vector3{5, 4, 1}, 1, 1, 100, true, "yellow"),
		NewItem("Box-2", "test", ShapeCube, Vector3{1, 1, 4}, 1, 2, 100, true, "olive"),
		NewItem("Box-3", "test", ShapeCube, Vector3{3, 4, 2}, 1, 3, 100, true, "pink"),
		NewItem("Box-4", "test", ShapeCube, Vector3{1, 1, 4}, 1, 4, 100, true, "olive"),
		NewItem("Box-5", "test", ShapeCube, Vector3{1, 2, 1}, 1, 5, 100, true, "pink"),
		NewItem("Box-6", "test", ShapeCube, Vector3{1, 2, 1}, 1, 6, 100, true, "pink"),
		NewItem("Box-7", "test", ShapeCube, Vector3{1, 1, 4}, 1, 7, 100, true, "olive"),
		NewItem("Box-8", "test", ShapeCube, Vector3{1, 1, 4}, 1, 8, 100, true, "olive"),
		NewItem("Box-9", "test", ShapeCube, Vector3{5, 4, 2}, 1, 9, 100, true, "brown"),
	)

	err := p.Pack(WithBiggerFirst(true), WithDistributeItems(false), WithFixPoint(true), WithCheckStable(true), WithSupportSurfaceRatio(0.75))
	require.NoError(t, err)

	require.Empty(t, p.UnfitItems())
	require.Len(t, bin.Items, 9)
}

// Scenario 5 (example7): distributing items across two bins must place
// each item at most once, and distribute_items=true hands bin 2 only
// what bin 1 could not take.
func TestScenarioMultiBinDistribute(t *testing.T) {
	newItems := func() []*Item {
		dims := [][3]float64{
			{5, 4, 1}, {1, 2, 4}, {1, 2, 3}, {1, 2, 2}, {1, 2, 3},
			{1, 2, 4}, {1, 2, 2}, {1, 2, 3}, {1, 2, 4}, {1, 2, 3},
			{1, 2, 2}, {5, 4, 1}, {1, 1, 4}, {1, 2, 1}, {1, 2, 1},
			{1, 1, 4}, {1, 1, 4}, {5, 4, 2},
		}
		items := make([]*Item, len(dims))
		for i, d := range dims {
			items[i] = NewItem(
				"Box", "test", ShapeCube, Vector3{d[0], d[1], d[2]}, 1, 1, 100, true, "olive",
			)
		}
		return items
	}

	p := NewPacker()
	bin1 := NewBin("bin1", Vector3{5, 5, 5}, 100, 0, PutUnspecified)
	bin2 := NewBin("bin2", Vector3{3, 3, 5}, 100, 0, PutUnspecified)
	p.AddBins(bin1, bin2)
	p.AddItems(newItems()...)

	err := p.Pack(WithBiggerFirst(true), WithDistributeItems(true), WithFixPoint(true), WithCheckStable(true), WithSupportSurfaceRatio(0.75))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, bin := range p.Bins {
		for _, it := range bin.Items {
			require.False(t, seen[it.ID().String()], "item placed twice across bins")
			seen[it.ID().String()] = true
		}
	}
	require.Equal(t, len(bin1.Items)+len(bin2.Items), len(seen))
}

// Scenario 6 (example4): binding interleaves server/cabinet/wash group
// members and leaves the truncated overflow on unfit_items.
func TestScenarioBinding(t *testing.T) {
	p := NewPacker()
	bin := NewBin("bin1", Vector3{589.8, 243.8, 259.1}, 28080, 15, PutUnspecified)
	p.AddBin(bin)

	for i := 1; i <= 3; i++ {
		name := "Server" + string(rune('0'+i))
		p.AddItem(NewItem(name, "server", ShapeCube, Vector3{70, 100, 30}, 20, 1, 100, true, "#0000E3"))
	}
	for i := 1; i <= 2; i++ {
		name := "Wash" + string(rune('0'+i))
		p.AddItem(NewItem(name, "wash", ShapeCube, Vector3{85, 60, 60}, 10, 1, 100, true, "#FFFF37"))
	}
	for i := 1; i <= 2; i++ {
		name := "Cabinet" + string(rune('0'+i))
		p.AddItem(NewItem(name, "cabinet", ShapeCube, Vector3{60, 80, 200}, 80, 1, 100, true, "#842B00"))
	}

	err := p.Pack(
		WithBiggerFirst(true), WithDistributeItems(false), WithFixPoint(true),
		WithCheckStable(true), WithSupportSurfaceRatio(0.75),
		WithBinding([]string{"server"}, []string{"cabinet"}, []string{"wash"}),
	)
	require.NoError(t, err)

	require.NotEmpty(t, bin.Items)
}
