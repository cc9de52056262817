// Package autosave tracks divergence between the current editor state and
// the last persisted baseline, and drives debounced background saves through
// an injected persistence callback.
package autosave

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkhorn/inkhorn/internal/model"
	"github.com/inkhorn/inkhorn/internal/util"
)

var asLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	asLogger = l
}

// DefaultInterval is the autosave timer period.
const DefaultInterval = 30 * time.Second

// SaveRequest is the payload handed to the persistence callback.
type SaveRequest struct {
	Title       string
	Content     *model.Node
	ContentText string
}

// SaveFunc persists a snapshot and reports success. A panic inside the
// callback is treated the same as a false return.
type SaveFunc func(req SaveRequest) bool

// Status is the observable save state of an editing session.
type Status struct {
	IsSaving          bool       `json:"isSaving"`
	LastSaved         *time.Time `json:"lastSaved"`
	HasUnsavedChanges bool       `json:"hasUnsavedChanges"`
}

// Coordinator owns the autosave state machine for one editing session:
// Clean -> (edit) -> Dirty -> (save attempt) -> Saving -> Clean on success,
// back to Dirty on failure. One coordinator per session; never shared.
type Coordinator struct {
	mu sync.Mutex

	articleID model.ArticleID

	title       string
	content     *model.Node
	contentText string

	isSaving   bool
	hasUnsaved bool
	lastSaved  *time.Time

	baselineFingerprint string
	baselineTitle       string

	save     SaveFunc
	interval time.Duration
	enabled  bool

	// onChange, when set, is invoked outside the lock after every
	// observable state transition.
	onChange func(Status)

	closed bool
	done   chan struct{}
	once   sync.Once

	// now is swapped in tests.
	now func() time.Time
}

// New creates a coordinator. The article id may be empty for a brand-new
// session; saves are suppressed until SetArticleID supplies one.
// A non-positive interval falls back to DefaultInterval.
func New(articleID model.ArticleID, save SaveFunc, interval time.Duration) *Coordinator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Coordinator{
		articleID: articleID,
		save:      save,
		interval:  interval,
		enabled:   true,
		done:      make(chan struct{}),
		now:       time.Now,
	}
}

// Start launches the timer loop. Each tick attempts a save when there are
// unsaved changes and no save is already in flight.
func (c *Coordinator) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-c.done:
				return
			case <-ticker.C:
				c.tick()
			}
		}
	}()
}

func (c *Coordinator) tick() {
	c.mu.Lock()
	ready := c.enabled && !c.closed && c.articleID != "" && c.hasUnsaved && !c.isSaving
	c.mu.Unlock()
	if ready {
		c.AttemptSave()
	}
}

// SetOnStateChange registers a listener for observable state transitions,
// used to push save status to open editor views.
func (c *Coordinator) SetOnStateChange(f func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = f
}

func (c *Coordinator) notify() {
	c.mu.Lock()
	f := c.onChange
	status := Status{
		IsSaving:          c.isSaving,
		LastSaved:         c.lastSaved,
		HasUnsavedChanges: c.hasUnsaved,
	}
	c.mu.Unlock()
	if f != nil {
		f(status)
	}
}

// SetEnabled toggles the timer-driven save path. Manual saves are unaffected.
func (c *Coordinator) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// SetArticleID supplies the remote record id after the surrounding
// collaborator created it on first save.
func (c *Coordinator) SetArticleID(id model.ArticleID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.articleID = id
}

// Update records the current editor state and recomputes the unsaved-changes
// flag against the baseline. It never triggers a save by itself.
func (c *Coordinator) Update(title string, content *model.Node, contentText string) {
	c.mu.Lock()
	c.title = title
	c.content = content
	c.contentText = contentText
	c.hasUnsaved = util.Fingerprint(content) != c.baselineFingerprint || title != c.baselineTitle
	c.mu.Unlock()
	c.notify()
}

// InitializeSavedState establishes the clean baseline after an external load,
// preventing a spurious autosave of unchanged content.
func (c *Coordinator) InitializeSavedState(title string, content *model.Node) {
	c.mu.Lock()
	c.title = title
	c.content = content
	c.baselineTitle = title
	c.baselineFingerprint = util.Fingerprint(content)
	c.hasUnsaved = false
	c.mu.Unlock()
	c.notify()
}

// AttemptSave runs one guarded save attempt and reports whether the content
// was persisted. It is a no-op returning false when the article id is empty,
// the trimmed title is blank, nothing actually diverged from the baseline,
// or another save is already in flight.
func (c *Coordinator) AttemptSave() bool {
	c.mu.Lock()

	if c.closed || c.isSaving || c.articleID == "" || strings.TrimSpace(c.title) == "" {
		c.mu.Unlock()
		return false
	}

	fingerprint := util.Fingerprint(c.content)
	title := c.title
	if fingerprint == c.baselineFingerprint && title == c.baselineTitle {
		// Stale timer fired after a manual save already cleared changes.
		c.hasUnsaved = false
		c.mu.Unlock()
		return false
	}

	c.isSaving = true
	req := SaveRequest{
		Title:       strings.TrimSpace(title),
		Content:     c.content,
		ContentText: c.contentText,
	}
	c.mu.Unlock()
	c.notify()

	ok := c.invoke(req)

	c.mu.Lock()

	if c.closed {
		// Session was torn down while the save was in flight; the result
		// is ignorable and no state mutation may be applied.
		c.mu.Unlock()
		return false
	}

	c.isSaving = false
	if ok {
		c.baselineFingerprint = fingerprint
		c.baselineTitle = title
		now := c.now()
		c.lastSaved = &now
		// Edits may have arrived while the save was in flight.
		c.hasUnsaved = util.Fingerprint(c.content) != fingerprint || c.title != title
	}
	// On failure the baseline and dirty flag stay untouched; the next
	// tick or a manual save retries.
	c.mu.Unlock()
	c.notify()

	return ok
}

// invoke shields the state machine from a panicking persistence callback.
func (c *Coordinator) invoke(req SaveRequest) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			asLogger.Error().Interface("panic", r).Msg("Persistence callback panicked")
			ok = false
		}
	}()
	return c.save(req)
}

// Status returns the observable save state.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		IsSaving:          c.isSaving,
		LastSaved:         c.lastSaved,
		HasUnsavedChanges: c.hasUnsaved,
	}
}

// Close stops the timer and marks the coordinator torn down. A save still in
// flight completes but its result is discarded.
func (c *Coordinator) Close() {
	c.once.Do(func() {
		close(c.done)
	})
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
