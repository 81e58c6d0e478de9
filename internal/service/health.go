package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dtroode/chirper-server/internal/model"
)

var _ model.ReadinessChecker = (*Health)(nil)

// Health aggregates readiness of the server's dependencies.
type Health struct {
	checks  map[string]model.ReadinessChecker
	timeout time.Duration
}

func NewHealth(checks map[string]model.ReadinessChecker) *Health {
	return &Health{checks: checks, timeout: 2 * time.Second}
}

// Ready runs every check and joins the failures.
func (h *Health) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := h.checks[name].Ready(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
