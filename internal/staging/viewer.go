package staging

import "fmt"

const downloadPrefix = "twins-ai-real-estate"

// View is the result viewer's projection of the displayed image.
type View struct {
	Index       int
	Count       int
	Image       Image
	Badge       Badge
	Transformed bool
}

type Download struct {
	Filename string
	Payload  Payload
}

// Next moves the viewer forward; it is a no-op at the last image.
func (w *Workspace) Next() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed && w.index < len(w.images)-1 {
		w.index++
		w.touchLocked()
		w.publishLocked()
	}
	return w.index
}

// Prev moves the viewer back; it is a no-op at the first image.
func (w *Workspace) Prev() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed && w.index > 0 {
		w.index--
		w.touchLocked()
		w.publishLocked()
	}
	return w.index
}

func (w *Workspace) Current() (View, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentLocked()
}

// Download returns the displayed image's result, or its original when no
// result exists, under a position-indexed file name.
func (w *Workspace) Download() (Download, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	v, ok := w.currentLocked()
	if !ok {
		return Download{}, false
	}
	p := v.Image.Shown()
	return Download{
		Filename: fmt.Sprintf("%s-%d%s", downloadPrefix, v.Index+1, p.Extension()),
		Payload:  p,
	}, true
}

func (w *Workspace) currentLocked() (View, bool) {
	if len(w.images) == 0 {
		return View{}, false
	}
	w.clampLocked()
	img := *w.images[w.index]
	return View{
		Index:       w.index,
		Count:       len(w.images),
		Image:       img,
		Badge:       img.Badge(),
		Transformed: img.Status == StatusDone && img.Result != nil,
	}, true
}
