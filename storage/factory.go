package storage

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/kbukum/flowreport/errors"
	"github.com/kbukum/flowreport/logger"
)

// Factory creates a Storage for one provider.
type Factory func(cfg Config, log *logger.Logger) (Storage, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// RegisterFactory makes a provider available to New.
func RegisterFactory(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = f
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the Storage selected by cfg.Provider. The provider package
// must be imported so its factory is registered.
func New(cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := validationError(cfg); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.WithComponent("storage")
	}

	mu.RLock()
	f, ok := factories[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, apperrors.InvalidInput("storage.provider", fmt.Sprintf("provider %q is not registered", cfg.Provider))
	}

	log.Debug("initializing storage", logger.Fields("provider", cfg.Provider))
	return f(cfg, log)
}

func validationError(cfg Config) error {
	cfg.Enabled = true
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}
