package settings

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olehluchkiv/capkit/internal/capability"
)

// EnvStore reads settings from environment variables carrying a fixed
// prefix. The environment is not writable from here, so Persist reports
// capability.ErrUnsupported — an explicit result, not a trap.
type EnvStore struct {
	prefix string
}

// NewEnvStore returns a read-only store over variables named prefix+KEY.
func NewEnvStore(prefix string) *EnvStore {
	return &EnvStore{prefix: prefix}
}

func (s *EnvStore) Load(ctx context.Context) (Values, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	values := make(Values)
	for _, entry := range os.Environ() {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, s.prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, s.prefix))
		if key == "" {
			continue
		}
		values[key] = value
	}
	return values, nil
}

func (s *EnvStore) Persist(_ context.Context, _ Values) error {
	return fmt.Errorf("environment settings are read-only: %w", capability.ErrUnsupported)
}
