package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_SchoolFormed(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// Disordered history
	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), FishCount: 100, Polarization: 0.2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, FishCount: 100, Polarization: 0.9})
	if !hasBookmark(bookmarks, BookmarkSchoolFormed) {
		t.Error("expected school_formed bookmark")
	}
}

func TestBookmarkDetector_SchoolBroken(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), FishCount: 100, Polarization: 0.9})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, FishCount: 100, Polarization: 0.3})
	if !hasBookmark(bookmarks, BookmarkSchoolBroken) {
		t.Error("expected school_broken bookmark")
	}

	// Peak was reset, a second low window does not trigger again
	bookmarks = bd.Check(WindowStats{WindowEndTick: 3600, FishCount: 100, Polarization: 0.3})
	if hasBookmark(bookmarks, BookmarkSchoolBroken) {
		t.Error("school_broken should not repeat without a new peak")
	}
}

func TestBookmarkDetector_Crowding(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 4; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), FishCount: 100, NearestMean: 2.0})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 2400, FishCount: 100, NearestMean: 0.6})
	if !hasBookmark(bookmarks, BookmarkCrowding) {
		t.Error("expected crowding bookmark")
	}
}

func TestBookmarkDetector_SurfaceBreachOncePerEpisode(t *testing.T) {
	bd := NewBookmarkDetector(10)

	breach := WindowStats{FishCount: 100, AboveBand: 20}
	if !hasBookmark(bd.Check(breach), BookmarkSurfaceBreach) {
		t.Fatal("expected surface_breach bookmark")
	}
	if hasBookmark(bd.Check(breach), BookmarkSurfaceBreach) {
		t.Error("surface_breach should not repeat while still breaching")
	}

	bd.Check(WindowStats{FishCount: 100, AboveBand: 0})
	if !hasBookmark(bd.Check(breach), BookmarkSurfaceBreach) {
		t.Error("expected a new surface_breach after recovery")
	}
}

func TestBookmarkDetector_SteadySchool(t *testing.T) {
	bd := NewBookmarkDetector(10)

	triggered := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{
			WindowEndTick: int32(i * 600),
			FishCount:     100,
			Polarization:  0.85,
		})
		if hasBookmark(bookmarks, BookmarkSteadySchool) {
			triggered++
		}
	}
	if triggered != 1 {
		t.Errorf("expected steady_school exactly once, got %d", triggered)
	}
}
