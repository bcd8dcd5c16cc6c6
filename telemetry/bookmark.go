package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSchoolFormed  BookmarkType = "school_formed"
	BookmarkSchoolBroken  BookmarkType = "school_broken"
	BookmarkCrowding      BookmarkType = "crowding"
	BookmarkSurfaceBreach BookmarkType = "surface_breach"
	BookmarkSteadySchool  BookmarkType = "steady_school"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the school's behaviour.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPolarizationPeak float64 // highest polarization since the last break
	steadyWindowsCount     int     // consecutive windows with steady polarization
	breaching              bool    // a surface breach is in progress
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady school detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// School formed: polarization high after a disordered stretch
		if b := bd.checkSchoolFormed(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// School broken: polarization dropped >40% from recent peak
		if b := bd.checkSchoolBroken(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Crowding: nearest neighbour distance < half the rolling average
		if b := bd.checkCrowding(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Steady school: aligned with low variance over 5+ windows
		if b := bd.checkSteadySchool(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Surface breach needs no history
	if b := bd.checkSurfaceBreach(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if stats.Polarization > bd.recentPolarizationPeak {
		bd.recentPolarizationPeak = stats.Polarization
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkSchoolFormed(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.Polarization
	}
	avg := total / float64(len(history))

	if stats.Polarization >= 0.8 && avg < 0.5 {
		return &Bookmark{
			Type:        BookmarkSchoolFormed,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Polarization %.2f after averaging %.2f", stats.Polarization, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkSchoolBroken(stats WindowStats) *Bookmark {
	if bd.recentPolarizationPeak < 0.5 {
		return nil
	}

	drop := 1.0 - stats.Polarization/bd.recentPolarizationPeak
	if drop > 0.40 {
		// Reset peak after a break
		oldPeak := bd.recentPolarizationPeak
		bd.recentPolarizationPeak = stats.Polarization

		return &Bookmark{
			Type:        BookmarkSchoolBroken,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Polarization fell %.0f%% from peak %.2f to %.2f", drop*100, oldPeak, stats.Polarization),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkCrowding(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.NearestMean <= 0 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.NearestMean
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.NearestMean < avg*0.5 {
		return &Bookmark{
			Type:        BookmarkCrowding,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Nearest neighbour %.2f is %.1fx average (%.2f)", stats.NearestMean, stats.NearestMean/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkSurfaceBreach(stats WindowStats) *Bookmark {
	if stats.FishCount < 10 {
		bd.breaching = false
		return nil
	}

	above := float64(stats.AboveBand) / float64(stats.FishCount)
	if above <= 0.10 {
		bd.breaching = false
		return nil
	}
	if bd.breaching {
		return nil
	}
	bd.breaching = true

	return &Bookmark{
		Type:        BookmarkSurfaceBreach,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d of %d fish above the band", stats.AboveBand, stats.FishCount),
	}
}

func (bd *BookmarkDetector) checkSteadySchool(stats WindowStats) *Bookmark {
	if stats.Polarization < 0.6 || stats.FishCount < 10 {
		bd.steadyWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	var sum float64
	for _, h := range recent {
		sum += h.Polarization
	}
	mean := sum / 4

	var variance float64
	for _, h := range recent {
		d := h.Polarization - mean
		variance += d * d
	}
	variance /= 4

	if variance < 0.0025 { // std < 0.05
		bd.steadyWindowsCount++
	} else {
		bd.steadyWindowsCount = 0
	}

	if bd.steadyWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkSteadySchool,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Steady school of %d fish at polarization %.2f over 5+ windows", stats.FishCount, stats.Polarization),
		}
	}

	return nil
}
