package ports

import "context"

// OptionStore persists theme settings under string keys. Implementations
// follow last-write-wins semantics and must be safe for concurrent use.
//
// Get reports found=false when nothing is stored under key. Set reports
// whether a write actually happened: storing a value deep-equal to the current
// one returns false with a nil error, mirroring the host CMS option API.
type OptionStore interface {
	Get(ctx context.Context, key string) (value map[string]any, found bool, err error)
	Set(ctx context.Context, key string, value map[string]any) (written bool, err error)
}
