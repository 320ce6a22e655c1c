// Package session holds the explicit application state: the full trade list,
// the active filter, and the metrics derived from the filtered view. The
// analytics engine stays pure; the session re-runs it wholesale whenever the
// underlying filtered set changes.
package session

import (
	"time"

	"deriverse-cli/internal/analytics/metrics"
	"deriverse-cli/internal/journal"
	"deriverse-cli/internal/models"
)

// Session is the mutable application state container. It is not safe for
// concurrent use; the CLI drives it from a single goroutine.
type Session struct {
	allTrades []models.Trade
	filter    models.FilterState
	filtered  []models.Trade
	metrics   models.DashboardMetrics
	portfolio models.PortfolioState
	now       func() time.Time
}

// New creates a session over the given trade history and portfolio snapshot.
func New(trades []models.Trade, portfolio models.PortfolioState) *Session {
	s := &Session{
		allTrades: trades,
		portfolio: portfolio,
		now:       time.Now,
	}
	s.recompute()
	return s
}

// WithClock overrides the wall clock used for rolling windows. Intended for
// tests.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	s.recompute()
	return s
}

// Trades returns the currently filtered trades.
func (s *Session) Trades() []models.Trade {
	return s.filtered
}

// AllTrades returns the unfiltered history.
func (s *Session) AllTrades() []models.Trade {
	return s.allTrades
}

// Metrics returns the aggregate for the filtered view.
func (s *Session) Metrics() models.DashboardMetrics {
	return s.metrics
}

// Portfolio returns the open-position snapshot.
func (s *Session) Portfolio() models.PortfolioState {
	return s.portfolio
}

// Filter returns the active filter state.
func (s *Session) Filter() models.FilterState {
	return s.filter
}

// SetFilter replaces the filter and recomputes the derived view.
func (s *Session) SetFilter(f models.FilterState) {
	s.filter = f
	s.recompute()
}

// ResetFilter clears all filter dimensions.
func (s *Session) ResetFilter() {
	s.SetFilter(models.FilterState{})
}

// UpdateJournal merges a journal patch into one trade and recomputes. The
// previous trade slice is left untouched.
func (s *Session) UpdateJournal(tradeID string, patch journal.Patch) {
	s.allTrades = journal.Apply(s.allTrades, tradeID, patch)
	s.recompute()
}

func (s *Session) recompute() {
	filtered := make([]models.Trade, 0, len(s.allTrades))
	for _, t := range s.allTrades {
		if s.filter.Match(t) {
			filtered = append(filtered, t)
		}
	}
	s.filtered = filtered
	s.metrics = metrics.CalculateAt(filtered, s.now())
}
