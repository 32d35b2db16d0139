package staging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"twins-digital-web/internal/catalog"
)

var (
	// ErrNoImage marks a remote response that carried no image part.
	ErrNoImage = errors.New("staging: response contains no image")
	// ErrUnreachable marks a transport-level failure reaching the remote service.
	ErrUnreachable = errors.New("staging: image service unreachable")
)

const (
	msgUnreachable = "No pudimos conectar con la IA. Por favor verifica tu conexión."
	msgInterrupted = "La generación se interrumpió antes de terminar."
)

// Transformer submits one image plus an instruction to the remote
// image-generation service and returns the produced image.
type Transformer interface {
	Transform(ctx context.Context, img Payload, instruction string) (Payload, error)
}

type TransformerFunc func(ctx context.Context, img Payload, instruction string) (Payload, error)

func (f TransformerFunc) Transform(ctx context.Context, img Payload, instruction string) (Payload, error) {
	return f(ctx, img, instruction)
}

// Settings are the run-wide selectors: caption audience/tone/length and the
// furniture style for furnish instructions.
type Settings struct {
	Audience catalog.Audience
	Tone     catalog.Tone
	Length   catalog.Length
	Style    catalog.Style
}

func DefaultSettings() Settings {
	return Settings{
		Audience: catalog.DefaultAudience,
		Tone:     catalog.DefaultTone,
		Length:   catalog.DefaultLength,
		Style:    catalog.DefaultStyle,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Audience == "" {
		s.Audience = d.Audience
	}
	if s.Tone == "" {
		s.Tone = d.Tone
	}
	if s.Length == "" {
		s.Length = d.Length
	}
	if s.Style == "" {
		s.Style = d.Style
	}
	return s
}

// Caption is the caption generator on its own, independent of any run.
func (w *Workspace) Caption(s Settings) string {
	s = s.withDefaults()
	return w.catalog.Caption(s.Audience, s.Tone, s.Length)
}

// Start launches Generate in the background and returns once the run has
// been admitted. Progress is observable through Subscribe.
func (w *Workspace) Start(ctx context.Context, s Settings) (string, error) {
	caption, ids, runCtx, err := w.begin(ctx, s)
	if err != nil {
		return "", err
	}
	go func() {
		if err := w.run(runCtx, ids, s.withDefaults()); err != nil {
			w.logger.Warn("background generation ended early", "images", len(ids), "err", err)
		}
	}()
	return caption, nil
}

// Generate runs the transformation pipeline to completion. The caption is
// produced before any remote call. Items are processed once, in list order,
// strictly one after another; a failing item is marked error and the run
// continues. Only one run may be active per workspace.
func (w *Workspace) Generate(ctx context.Context, s Settings) (string, error) {
	caption, ids, runCtx, err := w.begin(ctx, s)
	if err != nil {
		return "", err
	}
	return caption, w.run(runCtx, ids, s.withDefaults())
}

func (w *Workspace) begin(ctx context.Context, s Settings) (string, []string, context.Context, error) {
	s = s.withDefaults()

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.closed:
		return "", nil, nil, ErrClosed
	case w.running:
		return "", nil, nil, ErrRunInProgress
	case len(w.images) == 0:
		return "", nil, nil, ErrEmpty
	case w.transformer == nil:
		return "", nil, nil, errors.New("staging: no transformer configured")
	}

	w.running = true
	w.runErr = ""
	w.settings = s
	w.caption = w.catalog.Caption(s.Audience, s.Tone, s.Length)
	w.index = 0
	w.showResult = false

	ids := make([]string, len(w.images))
	for i, img := range w.images {
		ids[i] = img.ID
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.touchLocked()
	w.publishLocked()

	return w.caption, ids, runCtx, nil
}

func (w *Workspace) run(ctx context.Context, ids []string, s Settings) error {
	start := time.Now()
	remoteCalls := 0
	processed := 0

	defer func() {
		w.finish(ids, ctx.Err() != nil)
		if w.hooks.RunFinished != nil {
			w.hooks.RunFinished(processed, time.Since(start))
		}
	}()

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		action, original, instruction, ok := w.claim(id, s)
		if !ok {
			continue
		}
		processed++
		if action == ActionNone {
			w.itemFinished(action, StatusDone, 0)
			continue
		}

		itemStart := time.Now()
		result, err := w.transform(ctx, original, instruction)
		remoteCalls++

		status := w.settle(id, result, err, remoteCalls == 1)
		w.itemFinished(action, status, time.Since(itemStart))
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("generation interrupted: %w", err)
	}
	return nil
}

func (w *Workspace) transform(ctx context.Context, img Payload, instruction string) (Payload, error) {
	if w.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.itemTimeout)
		defer cancel()
	}
	return w.transformer.Transform(ctx, img, instruction)
}

// claim marks the item as processing (or done for ActionNone) and returns
// what the remote call needs. It reports false when the item was removed.
func (w *Workspace) claim(id string, s Settings) (Action, Payload, string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return "", Payload{}, "", false
	}
	img := w.findLocked(id)
	if img == nil {
		return "", Payload{}, "", false
	}

	var instruction string
	switch img.Action {
	case ActionNone:
		img.Status = StatusDone
		img.Result = nil
		w.publishLocked()
		return ActionNone, Payload{}, "", true
	case ActionFurnish:
		instruction = w.catalog.FurnishInstruction(s.Style)
	case ActionEmpty:
		instruction = w.catalog.EmptyInstruction()
	default:
		img.Status = StatusError
		img.Result = nil
		w.publishLocked()
		return img.Action, Payload{}, "", false
	}

	img.Status = StatusProcessing
	img.Result = nil
	w.publishLocked()
	return img.Action, img.Original, instruction, true
}

// settle applies one remote outcome. Outcomes for items removed, re-actioned
// or torn down while the call was in flight are discarded.
func (w *Workspace) settle(id string, result Payload, err error, firstCall bool) Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return StatusUnset
	}
	img := w.findLocked(id)
	if img == nil || img.Status != StatusProcessing {
		w.logger.Info("discarding result for image no longer awaiting it", "image_id", id)
		return StatusUnset
	}

	switch {
	case err != nil:
		img.Status = StatusError
		img.Result = nil
		w.logger.Warn("image transformation failed", "image_id", id, "err", err)
		if firstCall && errors.Is(err, ErrUnreachable) {
			w.runErr = msgUnreachable
		}
	case len(result.Data) == 0:
		img.Status = StatusError
		img.Result = nil
		w.logger.Warn("image transformation returned no image", "image_id", id)
	default:
		r := result
		img.Status = StatusDone
		img.Result = &r
	}

	w.publishLocked()
	return img.Status
}

// finish ends the run: items of this run still pending or processing are
// marked error, the viewer is reset and revealed.
func (w *Workspace) finish(ids []string, interrupted bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.running = false
	if w.closed {
		return
	}

	for _, id := range ids {
		img := w.findLocked(id)
		if img == nil {
			continue
		}
		if img.Status == StatusProcessing || (interrupted && img.Status == StatusPending) {
			img.Status = StatusError
			img.Result = nil
		}
	}
	if interrupted && w.runErr == "" {
		w.runErr = msgInterrupted
	}

	w.clampLocked()
	w.showResult = len(w.images) > 0
	w.touchLocked()
	w.publishLocked()
}

func (w *Workspace) itemFinished(action Action, status Status, elapsed time.Duration) {
	if status == StatusUnset || w.hooks.ItemFinished == nil {
		return
	}
	w.hooks.ItemFinished(action, status, elapsed)
}
