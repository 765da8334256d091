package ports

// ViewRenderer executes a markup file with the supplied data scope and
// returns its output. A missing file is reported with an error wrapping
// fs.ErrNotExist.
type ViewRenderer interface {
	Render(filePath string, data map[string]any) (string, error)
}
