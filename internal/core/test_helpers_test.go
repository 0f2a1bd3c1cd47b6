package core

import (
	"context"
	"testing"

	"legislativelens/internal/blob"
	"legislativelens/internal/fixture"
)

func loadRepositoryFixtures(t *testing.T) fixture.Set {
	t.Helper()
	store, err := blob.NewFilesystem("../../fixtures")
	if err != nil {
		t.Fatalf("open fixtures: %v", err)
	}
	set, err := fixture.NewLoader(store, "").Load(context.Background())
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	return set
}

func newFixtureService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	return NewService(loadRepositoryFixtures(t), opts...)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
