package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"twins-digital-web/internal/catalog"
)

var (
	ErrEmpty         = errors.New("staging: no images to process")
	ErrRunInProgress = errors.New("staging: a generation run is already in progress")
	ErrClosed        = errors.New("staging: workspace is closed")
)

// Hooks receive pipeline events; both fields are optional.
type Hooks struct {
	ItemFinished func(action Action, status Status, elapsed time.Duration)
	RunFinished  func(items int, elapsed time.Duration)
}

type Options struct {
	Transformer Transformer
	Catalog     *catalog.Catalog
	Logger      *slog.Logger
	Hooks       Hooks
	NewID       func() string
	// ItemTimeout bounds each remote call; zero means no extra bound.
	ItemTimeout time.Duration
}

// Snapshot is a copy of the workspace state handed to observers.
type Snapshot struct {
	Images     []Image
	Index      int
	Running    bool
	ShowResult bool
	Caption    string
	Error      string
	Settings   Settings
}

// Workspace owns one visitor's image list, the result viewer position and
// the single-flight pipeline run. All methods are safe for concurrent use.
type Workspace struct {
	mu sync.Mutex

	images     []*Image
	index      int
	running    bool
	showResult bool
	caption    string
	runErr     string
	settings   Settings
	closed     bool
	cancel     context.CancelFunc
	lastActive time.Time

	subs    map[int]chan Snapshot
	nextSub int

	transformer Transformer
	catalog     *catalog.Catalog
	logger      *slog.Logger
	hooks       Hooks
	newID       func() string
	itemTimeout time.Duration
}

func NewWorkspace(opts Options) *Workspace {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &Workspace{
		settings:    DefaultSettings(),
		lastActive:  time.Now(),
		subs:        make(map[int]chan Snapshot),
		transformer: opts.Transformer,
		catalog:     cat,
		logger:      logger,
		hooks:       opts.Hooks,
		newID:       newID,
		itemTimeout: opts.ItemTimeout,
	}
}

// Add appends images in order with action furnish and status pending.
// Adding hides any previously revealed result view.
func (w *Workspace) Add(inputs ...Input) []Image {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || len(inputs) == 0 {
		return nil
	}

	added := make([]Image, 0, len(inputs))
	for _, in := range inputs {
		if len(in.Payload.Data) == 0 {
			continue
		}
		img := &Image{
			ID:       w.uniqueIDLocked(),
			Name:     in.Name,
			Original: in.Payload,
			Sample:   in.Sample,
			Action:   ActionFurnish,
			Status:   StatusPending,
		}
		if img.Name == "" {
			img.Name = fmt.Sprintf("Foto %d", len(w.images)+1)
		}
		w.images = append(w.images, img)
		added = append(added, *img)
	}

	if len(added) > 0 {
		w.showResult = false
		w.touchLocked()
		w.publishLocked()
	}
	return added
}

// SetAction changes one image's action and invalidates its previous result.
// It reports false when the ID is unknown.
func (w *Workspace) SetAction(id string, action Action) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}
	img := w.findLocked(id)
	if img == nil {
		return false
	}

	img.Action = action
	img.Status = StatusPending
	img.Result = nil
	w.touchLocked()
	w.publishLocked()
	return true
}

// Remove drops an image at any time, including mid-run. The viewer index is
// re-clamped to the shorter list.
func (w *Workspace) Remove(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return false
	}
	for i, img := range w.images {
		if img.ID != id {
			continue
		}
		w.images = append(w.images[:i], w.images[i+1:]...)
		w.clampLocked()
		if len(w.images) == 0 {
			w.showResult = false
		}
		w.touchLocked()
		w.publishLocked()
		return true
	}
	return false
}

func (w *Workspace) Image(id string) (Image, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	img := w.findLocked(id)
	if img == nil {
		return Image{}, false
	}
	return *img, true
}

func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.images)
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// DismissError clears the run-level error message.
func (w *Workspace) DismissError() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.runErr == "" {
		return
	}
	w.runErr = ""
	w.publishLocked()
}

// Subscribe returns a channel that receives the latest snapshot after every
// change. A slow reader only misses intermediate snapshots. The returned
// func unsubscribes; the channel is closed on unsubscribe or Close.
func (w *Workspace) Subscribe() (<-chan Snapshot, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if w.closed {
		close(ch)
		return ch, func() {}
	}

	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	ch <- w.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if c, ok := w.subs[id]; ok {
				delete(w.subs, id)
				close(c)
			}
		})
	}
}

// Close tears the workspace down. An in-flight run is cancelled and any
// update it would still apply is discarded.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	for id, ch := range w.subs {
		close(ch)
		delete(w.subs, id)
	}
	w.images = nil
}

func (w *Workspace) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Workspace) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Workspace) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}

func (w *Workspace) findLocked(id string) *Image {
	for _, img := range w.images {
		if img.ID == id {
			return img
		}
	}
	return nil
}

func (w *Workspace) uniqueIDLocked() string {
	for {
		id := w.newID()
		if id != "" && w.findLocked(id) == nil {
			return id
		}
	}
}

func (w *Workspace) clampLocked() {
	switch {
	case len(w.images) == 0:
		w.index = 0
	case w.index >= len(w.images):
		w.index = len(w.images) - 1
	case w.index < 0:
		w.index = 0
	}
}

func (w *Workspace) touchLocked() {
	w.lastActive = time.Now()
}

func (w *Workspace) snapshotLocked() Snapshot {
	images := make([]Image, len(w.images))
	for i, img := range w.images {
		images[i] = *img
	}
	return Snapshot{
		Images:     images,
		Index:      w.index,
		Running:    w.running,
		ShowResult: w.showResult,
		Caption:    w.caption,
		Error:      w.runErr,
		Settings:   w.settings,
	}
}

func (w *Workspace) publishLocked() {
	if len(w.subs) == 0 {
		return
	}
	snap := w.snapshotLocked()
	for _, ch := range w.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
