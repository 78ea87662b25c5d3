package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"envy/internal/domain/models"
	"envy/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	n := 0
	s, err := store.New(context.Background(), nil,
		store.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("bk-%d", n)
		}),
		store.WithClock(func() time.Time { return time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return s
}

func guest() models.ClientDetails {
	return models.ClientDetails{Name: "Naledi van der Berg", Email: "naledi@example.com", Phone: "+27 82 555 0101"}
}
