package gallery

import (
	"sync"
	"time"

	"hearing-care-backend/internal/domain"
)

// Keys understood by the lightbox.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyEscape     = "Escape"
)

// KeyBinder attaches a keyboard handler while the lightbox is open.
type KeyBinder interface {
	Bind(handler func(key string))
	Unbind()
}

// LightboxState is a snapshot of the viewer.
type LightboxState struct {
	Open  bool
	Index int
	Photo *domain.GalleryPhoto
}

// Lightbox is the full-screen photo viewer state machine. Navigation wraps
// around at both ends. It is safe for concurrent use.
type Lightbox struct {
	mu          sync.Mutex
	photos      []domain.GalleryPhoto
	index       int
	open        bool
	binder      KeyBinder
	autoAdvance time.Duration
	timer       *time.Timer
	timerGen    uint64 // bumped on every reset; stale callbacks compare against it
	onChange    func(LightboxState)
}

// LightboxOption configures a Lightbox.
type LightboxOption func(*Lightbox)

// WithKeyBinder binds keyboard navigation on open and unbinds it on close.
func WithKeyBinder(b KeyBinder) LightboxOption {
	return func(l *Lightbox) { l.binder = b }
}

// WithAutoAdvance moves to the next photo every d while open.
func WithAutoAdvance(d time.Duration) LightboxOption {
	return func(l *Lightbox) { l.autoAdvance = d }
}

// WithOnChange registers a callback run after every state change. It is
// called with the lightbox lock released.
func WithOnChange(fn func(LightboxState)) LightboxOption {
	return func(l *Lightbox) { l.onChange = fn }
}

// NewLightbox creates a closed lightbox over photos.
func NewLightbox(photos []domain.GalleryPhoto, opts ...LightboxOption) *Lightbox {
	l := &Lightbox{photos: photos}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open shows the photo at index i. Opening an empty gallery does nothing.
func (l *Lightbox) Open(i int) {
	l.mu.Lock()
	if len(l.photos) == 0 {
		l.mu.Unlock()
		return
	}
	wasOpen := l.open
	l.index = ClampIndex(i, len(l.photos))
	l.open = true
	l.resetTimerLocked()
	state := l.stateLocked()
	l.mu.Unlock()

	if !wasOpen && l.binder != nil {
		l.binder.Bind(l.handleKey)
	}
	l.notify(state)
}

// Close hides the viewer, stops auto-advance and unbinds the keyboard.
func (l *Lightbox) Close() {
	l.mu.Lock()
	if !l.open {
		l.mu.Unlock()
		return
	}
	l.open = false
	l.stopTimerLocked()
	state := l.stateLocked()
	l.mu.Unlock()

	if l.binder != nil {
		l.binder.Unbind()
	}
	l.notify(state)
}

// Next moves forward, wrapping from the last photo to the first.
func (l *Lightbox) Next() {
	l.move(NextIndex)
}

// Prev moves backward, wrapping from the first photo to the last.
func (l *Lightbox) Prev() {
	l.move(PrevIndex)
}

// GoTo jumps to index i (clamped).
func (l *Lightbox) GoTo(i int) {
	l.move(func(_, n int) int { return ClampIndex(i, n) })
}

func (l *Lightbox) move(step func(i, n int) int) {
	l.moveIf(step, func() bool { return true })
}

// autoNext runs on the timer goroutine. A manual move may have reset the
// timer after it fired, so callbacks from older generations are dropped.
func (l *Lightbox) autoNext(gen uint64) {
	l.moveIf(NextIndex, func() bool { return gen == l.timerGen })
}

func (l *Lightbox) moveIf(step func(i, n int) int, current func() bool) {
	l.mu.Lock()
	if !l.open || !current() {
		l.mu.Unlock()
		return
	}
	l.index = step(l.index, len(l.photos))
	l.resetTimerLocked()
	state := l.stateLocked()
	l.mu.Unlock()

	l.notify(state)
}

// HandleKey applies a key press. It reports whether the key was consumed;
// keys are ignored while the lightbox is closed.
func (l *Lightbox) HandleKey(key string) bool {
	l.mu.Lock()
	open := l.open
	l.mu.Unlock()
	if !open {
		return false
	}

	switch key {
	case KeyArrowRight:
		l.Next()
	case KeyArrowLeft:
		l.Prev()
	case KeyEscape:
		l.Close()
	default:
		return false
	}
	return true
}

func (l *Lightbox) handleKey(key string) {
	l.HandleKey(key)
}

// State returns a snapshot.
func (l *Lightbox) State() LightboxState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stateLocked()
}

func (l *Lightbox) stateLocked() LightboxState {
	s := LightboxState{Open: l.open, Index: l.index}
	if l.open {
		p := l.photos[l.index]
		s.Photo = &p
	}
	return s
}

func (l *Lightbox) resetTimerLocked() {
	l.stopTimerLocked()
	if l.autoAdvance > 0 && len(l.photos) > 1 {
		gen := l.timerGen
		l.timer = time.AfterFunc(l.autoAdvance, func() { l.autoNext(gen) })
	}
}

func (l *Lightbox) stopTimerLocked() {
	l.timerGen++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *Lightbox) notify(s LightboxState) {
	if l.onChange != nil {
		l.onChange(s)
	}
}
