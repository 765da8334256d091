package ports

// AssetPipeline registers and enqueues named CSS/JS resources for the page
// currently being rendered.
//
// ShouldEnqueueForCurrentView is a pass-through policy owned by the host: themes
// consult it before enqueueing anything and skip all assets when it is false.
type AssetPipeline interface {
	EnqueueStyle(handle, url string, deps []string)
	EnqueueScript(handle, url string, deps []string)
	EnqueueRegisteredStyle(handle string)
	EnqueueRegisteredScript(handle string)
	ShouldEnqueueForCurrentView() bool
}

// URLResolver maps an asset path relative to a theme's base directory to an
// absolute URL.
type URLResolver interface {
	AssetURL(basePath, relPath string) (string, error)
}
