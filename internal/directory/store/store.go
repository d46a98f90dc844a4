// Package store caches resolved access points so repeated resolutions skip
// the directory walk.
package store

import (
	"context"
	"errors"
	"strings"

	"esbresolver/internal/directory/models"
)

// ErrNotFound is returned on a cache miss.
var ErrNotFound = errors.New("not found")

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks ResolutionCache

// ResolutionCache stores access points by resolution key.
type ResolutionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, accessPoint string) error
	Clear(ctx context.Context) error
}

// Key builds the cache key of a resolution.
func Key(provider *models.Identifier, service models.Identifier, useType models.AccessPointUseType) string {
	var b strings.Builder
	if provider != nil {
		b.WriteString(provider.String())
	}
	b.WriteByte('|')
	b.WriteString(service.String())
	b.WriteByte('|')
	b.WriteString(useType.String())
	return b.String()
}
