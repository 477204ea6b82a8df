// Package settings implements loading and persisting of key/value settings.
// Sources and stores are independent capabilities: a variant may load,
// persist, or both. A source that cannot persist says so through
// capability.ErrUnsupported instead of being special-cased by name.
package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/olehluchkiv/capkit/internal/capability"
)

// Values holds a flat set of settings.
type Values map[string]string

// Loadable reads a complete settings snapshot.
type Loadable interface {
	Load(ctx context.Context) (Values, error)
}

// Persistable writes a complete settings snapshot.
type Persistable interface {
	Persist(ctx context.Context, values Values) error
}

// Store is a variant satisfying both capabilities.
type Store interface {
	Loadable
	Persistable
}

// Sync loads from src and persists into dst. An ErrUnsupported result from
// dst is handled per policy: skipped with a log line, or surfaced. Genuine
// failures always surface.
func Sync(ctx context.Context, dst Persistable, src Loadable, policy capability.Policy, logger *slog.Logger) error {
	values, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if err := dst.Persist(ctx, values); err != nil {
		if policy.Tolerates(err) {
			logger.Info("skipping unsupported persist", "keys", len(values), "reason", err)
			return nil
		}
		return fmt.Errorf("persisting settings: %w", err)
	}

	logger.Debug("settings synced", "keys", len(values))
	return nil
}
