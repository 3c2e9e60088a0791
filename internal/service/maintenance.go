package service

import (
	"context"
	"fmt"
)

// MaintenanceService houses destructive actions.
type MaintenanceService struct {
	Store Store
}

// Reset removes the stored login collection. The next Register starts a new one.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("maintenance: store not configured")
	}
	if err := s.Store.RemoveItem(ctx, LoginsKey); err != nil {
		return fmt.Errorf("reset logins: %w", err)
	}
	return nil
}
