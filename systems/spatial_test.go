package systems

import (
	"math/rand"
	"testing"
)

func TestSpatialGridNeighbors(t *testing.T) {
	g := NewSpatialGrid(300, 300, 100)
	g.Insert(0, 50, 50)   // cell (0,0)
	g.Insert(1, 150, 150) // cell (1,1)
	g.Insert(2, 250, 250) // cell (2,2)

	got := g.NeighborsInto(nil, 10, 10)
	if len(got) != 2 {
		t.Fatalf("corner query should see cells (0,0)-(1,1), got %v", got)
	}

	got = g.NeighborsInto(nil, 150, 150)
	if len(got) != 3 {
		t.Errorf("center query should see all points, got %v", got)
	}
}

func TestSpatialGridResetKeepsCellsWhenUnchanged(t *testing.T) {
	g := NewSpatialGrid(200, 200, 50)
	g.Insert(0, 10, 10)
	cells := g.cols * g.rows

	g.Reset(200, 200, 50)
	if len(g.NeighborsInto(nil, 10, 10)) != 0 {
		t.Error("reset should empty the grid")
	}
	if g.cols*g.rows != cells {
		t.Error("unchanged size should keep the layout")
	}

	g.Reset(400, 200, 50)
	if g.cols != 9 || g.rows != 5 {
		t.Errorf("expected 9x5 cells after resize, got %dx%d", g.cols, g.rows)
	}
}

func TestSpatialGridClampsOutOfBounds(t *testing.T) {
	g := NewSpatialGrid(100, 100, 50)
	g.Insert(0, -5, 120)
	if len(g.NeighborsInto(nil, 0, 99)) != 1 {
		t.Error("out of bounds point should land in the nearest edge cell")
	}
}

// The grid must find exactly the pairs a full pairwise scan finds.
func TestLinksMatchPairwiseScan(t *testing.T) {
	caps := desktopCaps()
	caps.ParticleCount = 150
	caps.ConnectDistance = 120
	f, _ := newTestField(t, 1280, 800, caps)

	rng := rand.New(rand.NewSource(7))
	for i := range f.ambient {
		f.ambient[i].X = rng.Float32() * 1280
		f.ambient[i].Y = rng.Float32() * 800
	}
	f.links = f.links[:0]
	f.updateLinks()

	want := 0
	for i := range f.ambient {
		for j := i + 1; j < len(f.ambient); j++ {
			a, b := f.ambient[i], f.ambient[j]
			if distanceSq(a.X, a.Y, b.X, b.Y) < f.connectSq {
				want++
			}
		}
	}
	if len(f.Links()) != want {
		t.Errorf("grid found %d links, pairwise scan %d", len(f.Links()), want)
	}
	if f.Stats().PairsChecked >= 150*149/2 {
		t.Errorf("grid checked %d pairs, no better than a full scan", f.Stats().PairsChecked)
	}
}

func TestSpatialGridBoundsCellCount(t *testing.T) {
	g := NewSpatialGrid(1280, 800, 0)
	if g.cols > maxGridAxis+1 || g.rows > maxGridAxis+1 {
		t.Errorf("zero cell size produced a %dx%d grid", g.cols, g.rows)
	}
}
