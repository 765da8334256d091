// Package assets is an in-process asset pipeline: it records registered and
// enqueued stylesheets and scripts and prints them in dependency order.
package assets

import (
	"fmt"
	"html"
	"slices"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

// ViewContext describes the page being rendered.
type ViewContext struct {
	Admin   bool
	Toolbar bool
}

// ShouldEnqueue reports whether theme assets belong on this view: everywhere
// except back-office pages that do not show the toolbar.
func (v ViewContext) ShouldEnqueue() bool {
	return !v.Admin || v.Toolbar
}

// Kind separates stylesheets from scripts.
type Kind string

const (
	KindStyle  Kind = "style"
	KindScript Kind = "script"
)

// Resource is one registered asset.
type Resource struct {
	Handle string
	URL    string
	Deps   []string
}

// UnknownHandleError is reported when an enqueued handle, or one of its
// dependencies, was never registered.
type UnknownHandleError struct {
	Kind   Kind
	Handle string
}

func (e UnknownHandleError) Error() string {
	return fmt.Sprintf("%s handle %q is not registered", e.Kind, e.Handle)
}

type queue struct {
	registered map[string]Resource
	enqueued   []string
}

func newQueue() *queue {
	return &queue{registered: make(map[string]Resource)}
}

func (q *queue) register(handle, url string, deps []string) {
	q.registered[handle] = Resource{Handle: handle, URL: url, Deps: slices.Clone(deps)}
}

func (q *queue) enqueue(handle string) {
	if !slices.Contains(q.enqueued, handle) {
		q.enqueued = append(q.enqueued, handle)
	}
}

// resolve returns the enqueued resources plus everything they depend on,
// dependencies first.
func (q *queue) resolve(kind Kind) ([]Resource, error) {
	g := newGraph()
	pending := slices.Clone(q.enqueued)
	seen := make(map[string]bool, len(pending))

	for len(pending) > 0 {
		handle := pending[0]
		pending = pending[1:]
		if seen[handle] {
			continue
		}
		seen[handle] = true

		res, ok := q.registered[handle]
		if !ok {
			return nil, UnknownHandleError{Kind: kind, Handle: handle}
		}
		g.addNode(handle)
		for _, dep := range res.Deps {
			g.addEdge(handle, dep)
			pending = append(pending, dep)
		}
	}

	order, err := g.order()
	if err != nil {
		return nil, err
	}
	out := make([]Resource, 0, len(order))
	for _, handle := range order {
		out = append(out, q.registered[handle])
	}
	return out, nil
}

// Pipeline implements ports.AssetPipeline for a single page render.
type Pipeline struct {
	mu      sync.Mutex
	view    ViewContext
	styles  *queue
	scripts *queue
}

// NewPipeline returns an empty pipeline for the given view.
func NewPipeline(view ViewContext) *Pipeline {
	return &Pipeline{view: view, styles: newQueue(), scripts: newQueue()}
}

var _ ports.AssetPipeline = (*Pipeline)(nil)

// RegisterStyle makes a stylesheet known without enqueueing it.
func (p *Pipeline) RegisterStyle(handle, url string, deps []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styles.register(handle, url, deps)
}

// RegisterScript makes a script known without enqueueing it.
func (p *Pipeline) RegisterScript(handle, url string, deps []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts.register(handle, url, deps)
}

// EnqueueStyle registers and enqueues a stylesheet.
func (p *Pipeline) EnqueueStyle(handle, url string, deps []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styles.register(handle, url, deps)
	p.styles.enqueue(handle)
}

// EnqueueScript registers and enqueues a script.
func (p *Pipeline) EnqueueScript(handle, url string, deps []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts.register(handle, url, deps)
	p.scripts.enqueue(handle)
}

// EnqueueRegisteredStyle enqueues a stylesheet registered earlier.
func (p *Pipeline) EnqueueRegisteredStyle(handle string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.styles.enqueue(handle)
}

// EnqueueRegisteredScript enqueues a script registered earlier.
func (p *Pipeline) EnqueueRegisteredScript(handle string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scripts.enqueue(handle)
}

// ShouldEnqueueForCurrentView implements ports.AssetPipeline.
func (p *Pipeline) ShouldEnqueueForCurrentView() bool {
	return p.view.ShouldEnqueue()
}

// Enqueued returns the handles enqueued so far, in call order.
func (p *Pipeline) Enqueued(kind Kind) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.queueFor(kind).enqueued)
}

// Resources returns what must be loaded for kind, dependencies first.
func (p *Pipeline) Resources(kind Kind) ([]Resource, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queueFor(kind).resolve(kind)
}

// Tags renders the <link> and <script> elements for everything enqueued.
func (p *Pipeline) Tags() (string, error) {
	styles, err := p.Resources(KindStyle)
	if err != nil {
		return "", err
	}
	scripts, err := p.Resources(KindScript)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, res := range styles {
		if res.URL == "" {
			continue
		}
		fmt.Fprintf(&b, "<link rel=\"stylesheet\" id=\"%s-css\" href=\"%s\">\n", html.EscapeString(res.Handle), html.EscapeString(res.URL))
	}
	for _, res := range scripts {
		if res.URL == "" {
			continue
		}
		fmt.Fprintf(&b, "<script id=\"%s-js\" src=\"%s\"></script>\n", html.EscapeString(res.Handle), html.EscapeString(res.URL))
	}
	return b.String(), nil
}

func (p *Pipeline) queueFor(kind Kind) *queue {
	if kind == KindScript {
		return p.scripts
	}
	return p.styles
}
