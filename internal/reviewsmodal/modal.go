// Package reviewsmodal implements the state behind the "all reviews" modal:
// debounced text search, an exact-rating filter and client-side pagination
// over an in-memory list of testimonials.
package reviewsmodal

import (
	"context"
	"strings"
	"sync"
	"time"

	"hearing-care-backend/internal/domain"
)

// Defaults for a new modal.
const (
	DefaultItemsPerPage   = 6
	DefaultSearchDebounce = 300 * time.Millisecond
)

// State is a snapshot of the modal.
type State struct {
	Open           bool
	Page           int
	ItemsPerPage   int
	Search         string
	SelectedRating int // 0 = all ratings
	Loading        bool
	Error          string
}

// FetchFunc loads the testimonials shown in the modal.
type FetchFunc func(ctx context.Context) ([]domain.EnhancedTestimonial, error)

// Modal is safe for concurrent use.
type Modal struct {
	mu       sync.Mutex
	state    State
	items    []domain.EnhancedTestimonial
	debounce time.Duration
	timer    *time.Timer
	pending  string
	onChange func(State)
}

// Option configures a Modal.
type Option func(*Modal)

// WithItemsPerPage sets the initial page size.
func WithItemsPerPage(n int) Option {
	return func(m *Modal) {
		if n > 0 {
			m.state.ItemsPerPage = n
		}
	}
}

// WithSearchDebounce sets the search delay. Zero applies searches immediately.
func WithSearchDebounce(d time.Duration) Option {
	return func(m *Modal) { m.debounce = d }
}

// WithOnChange registers a callback run after each state change, outside the lock.
func WithOnChange(fn func(State)) Option {
	return func(m *Modal) { m.onChange = fn }
}

// New creates a closed modal over items.
func New(items []domain.EnhancedTestimonial, opts ...Option) *Modal {
	m := &Modal{
		items:    items,
		debounce: DefaultSearchDebounce,
		state: State{
			Page:         1,
			ItemsPerPage: DefaultItemsPerPage,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open shows the modal.
func (m *Modal) Open() {
	m.update(func(s *State) { s.Open = true })
}

// Close hides the modal, cancels a pending search and clears filters.
func (m *Modal) Close() {
	m.mu.Lock()
	m.stopTimerLocked()
	m.pending = ""
	m.state = State{
		Page:         1,
		ItemsPerPage: m.state.ItemsPerPage,
	}
	s := m.state
	m.mu.Unlock()

	m.notify(s)
}

// SetItems replaces the testimonials and returns to the first page.
func (m *Modal) SetItems(items []domain.EnhancedTestimonial) {
	m.mu.Lock()
	m.items = items
	m.state.Page = 1
	s := m.state
	m.mu.Unlock()

	m.notify(s)
}

// SetSearch schedules q to become the active search after the debounce
// delay. A newer call replaces a pending one.
func (m *Modal) SetSearch(q string) {
	m.mu.Lock()
	m.stopTimerLocked()
	m.pending = q
	if m.debounce <= 0 {
		m.mu.Unlock()
		m.FlushSearch()
		return
	}
	m.timer = time.AfterFunc(m.debounce, m.FlushSearch)
	m.mu.Unlock()
}

// FlushSearch applies the pending search now. A changed query resets the page.
func (m *Modal) FlushSearch() {
	m.mu.Lock()
	m.stopTimerLocked()
	if m.pending == m.state.Search {
		m.mu.Unlock()
		return
	}
	m.state.Search = m.pending
	m.state.Page = 1
	s := m.state
	m.mu.Unlock()

	m.notify(s)
}

// SetRating filters to an exact rating (0 shows all) and resets the page.
func (m *Modal) SetRating(r int) {
	if r < 0 || r > domain.MaxReviewRating {
		r = 0
	}
	m.update(func(s *State) {
		s.SelectedRating = r
		s.Page = 1
	})
}

// SetItemsPerPage changes the page size and resets the page.
func (m *Modal) SetItemsPerPage(n int) {
	if n < 1 {
		return
	}
	m.update(func(s *State) {
		s.ItemsPerPage = n
		s.Page = 1
	})
}

// SetPage moves to page p, clamped to [1, TotalPages].
func (m *Modal) SetPage(p int) {
	m.mu.Lock()
	total := totalPages(len(m.filteredLocked()), m.state.ItemsPerPage)
	if p > total {
		p = total
	}
	if p < 1 {
		p = 1
	}
	m.state.Page = p
	s := m.state
	m.mu.Unlock()

	m.notify(s)
}

// NextPage and PrevPage step through pages without wrapping.
func (m *Modal) NextPage() { m.SetPage(m.State().Page + 1) }
func (m *Modal) PrevPage() { m.SetPage(m.State().Page - 1) }

// Load runs fetch with the loading flag set and stores the result or error.
func (m *Modal) Load(ctx context.Context, fetch FetchFunc) error {
	m.update(func(s *State) {
		s.Loading = true
		s.Error = ""
	})

	items, err := fetch(ctx)

	m.mu.Lock()
	m.state.Loading = false
	if err != nil {
		m.state.Error = err.Error()
	} else {
		m.items = items
		m.state.Page = 1
	}
	s := m.state
	m.mu.Unlock()

	m.notify(s)
	return err
}

// State returns a snapshot.
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Filtered returns the testimonials matching the active search and rating.
func (m *Modal) Filtered() []domain.EnhancedTestimonial {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filteredLocked()
}

// TotalPages is ceil(len(Filtered) / ItemsPerPage).
func (m *Modal) TotalPages() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return totalPages(len(m.filteredLocked()), m.state.ItemsPerPage)
}

// PageItems returns the testimonials on the current page.
func (m *Modal) PageItems() []domain.EnhancedTestimonial {
	m.mu.Lock()
	defer m.mu.Unlock()

	filtered := m.filteredLocked()
	start := (m.state.Page - 1) * m.state.ItemsPerPage
	if start >= len(filtered) {
		return nil
	}
	end := start + m.state.ItemsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

func (m *Modal) filteredLocked() []domain.EnhancedTestimonial {
	query := strings.ToLower(strings.TrimSpace(m.state.Search))
	out := make([]domain.EnhancedTestimonial, 0, len(m.items))
	for _, t := range m.items {
		if m.state.SelectedRating > 0 && t.Rating != m.state.SelectedRating {
			continue
		}
		if query != "" && !Matches(t, query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Matches reports whether the lower-cased query is a substring of the
// testimonial's name, content, service or original text, ignoring case.
func Matches(t domain.EnhancedTestimonial, query string) bool {
	for _, field := range []string{t.Name, t.Content, t.Service, t.OriginalText} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func totalPages(n, perPage int) int {
	if perPage < 1 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

func (m *Modal) update(fn func(*State)) {
	m.mu.Lock()
	fn(&m.state)
	s := m.state
	m.mu.Unlock()

	m.notify(s)
}

func (m *Modal) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Modal) notify(s State) {
	if m.onChange != nil {
		m.onChange(s)
	}
}
