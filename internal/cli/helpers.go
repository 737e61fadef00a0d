package cli

import (
	"context"
	"fmt"

	"github.com/francescabuggio/ecocart/internal/store"
)

// withStore opens the configured backend, executes the function, and
// handles cleanup.
func withStore(ctx context.Context, fn func(*store.Store) error) error {
	s, err := store.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer s.Close()

	return fn(s)
}
