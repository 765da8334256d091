package theme

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"

	"github.com/alexisbeaulieu97/themekit/internal/filescan"
)

// Render enqueues the theme's assets and renders filePath with data overlaid
// by the additional view data. A missing file yields a TemplateNotFoundError
// and the renderer is not called. With echo the output goes to the theme's
// writer and the returned string is empty.
func (t *Theme) Render(filePath string, data map[string]any, echo bool) (string, error) {
	t.EnqueuePreregistered()
	t.EnqueueCSS()
	t.EnqueueJS()

	scope := make(map[string]any, len(data)+len(t.additionalViewData))
	maps.Copy(scope, data)
	maps.Copy(scope, t.additionalViewData)

	if !filescan.IsFile(filePath) {
		t.log.Warn("template not found", "path", filePath)
		return "", &TemplateNotFoundError{Path: filePath}
	}
	return t.view(filePath, scope, echo)
}

// RenderSettings renders filePath with the effective options as data. No
// assets are enqueued.
func (t *Theme) RenderSettings(filePath string, echo bool) (string, error) {
	return t.view(filePath, map[string]any(t.Options()), echo)
}

func (t *Theme) view(filePath string, scope map[string]any, echo bool) (string, error) {
	out, err := t.views.Render(filePath, scope)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &TemplateNotFoundError{Path: filePath}
		}
		return "", fmt.Errorf("render %s: %w", filePath, err)
	}
	if !echo {
		return out, nil
	}
	if _, err := io.WriteString(t.out, out); err != nil {
		return "", fmt.Errorf("write %s output: %w", filePath, err)
	}
	return "", nil
}

// EnqueuePreregistered enqueues the handles the pipeline already knows.
func (t *Theme) EnqueuePreregistered() {
	if !t.shouldEnqueue() {
		return
	}
	for _, handle := range t.def.PreregisteredCSS {
		t.assets.EnqueueRegisteredStyle(handle)
	}
	for _, handle := range t.def.PreregisteredJS {
		t.assets.EnqueueRegisteredScript(handle)
	}
}

// EnqueueCSS enqueues the declared stylesheets.
func (t *Theme) EnqueueCSS() {
	if !t.shouldEnqueue() {
		return
	}
	t.enqueueDeclared("css", t.def.CSS, t.assets.EnqueueStyle)
}

// EnqueueJS enqueues the declared scripts.
func (t *Theme) EnqueueJS() {
	if !t.shouldEnqueue() {
		return
	}
	t.enqueueDeclared("js", t.def.JS, t.assets.EnqueueScript)
}

// AssetHandle returns the pipeline handle used for one of the theme's own
// assets. The unique id suffix keeps instances of one variant apart.
func (t *Theme) AssetHandle(handle string) string {
	return handle + "-" + t.uniqueID
}

func (t *Theme) shouldEnqueue() bool {
	return t.assets != nil && t.assets.ShouldEnqueueForCurrentView()
}

func (t *Theme) enqueueDeclared(kind string, assets []Asset, enqueue func(handle, url string, deps []string)) {
	own := make(map[string]struct{}, len(assets))
	for _, asset := range assets {
		own[asset.Handle] = struct{}{}
	}

	for _, asset := range assets {
		url, err := t.urls.AssetURL(t.basePath, asset.Path)
		if err != nil {
			t.log.Warn("skipping asset", "kind", kind, "handle", asset.Handle, "error", err.Error())
			continue
		}

		deps := make([]string, 0, len(asset.Deps))
		for _, dep := range asset.Deps {
			if _, ok := own[dep]; ok {
				dep = t.AssetHandle(dep)
			}
			deps = append(deps, dep)
		}
		enqueue(t.AssetHandle(asset.Handle), url, deps)
	}
}
