package reader

import (
	"context"
	"sync"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the package-wide registry, pre-populated with the LAS
// and LAZ drivers.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.Register(NewLASDriver())
		defaultRegistry.Register(NewLAZDriver())
	})
	return defaultRegistry
}

// Good reports whether the default registry can read path.
func Good(path string) bool {
	return Default().Good(path)
}

// PreviewSource previews path through the default registry.
func PreviewSource(ctx context.Context, path string, reproj *Reprojection) (Preview, bool) {
	return Default().Preview(ctx, path, reproj)
}

// Run reads path fully through the default registry, emitting points into
// table.
func Run(ctx context.Context, table Table, path string, reproj *Reprojection) bool {
	return Default().Run(ctx, table, path, reproj)
}
