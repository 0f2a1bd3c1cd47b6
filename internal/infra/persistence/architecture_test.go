package persistence

import (
	"testing"

	"legislativelens/testutil"
)

// TestSnapshotDriversStayBelowCore keeps the storage drivers free of the
// catalog service and its surfaces.
func TestSnapshotDriversStayBelowCore(t *testing.T) {
	for _, layer := range []string{"internal/core", "internal/adapters", "internal/config"} {
		testutil.AssertNoTransitiveDependency(t, testutil.ModulePath+"/internal/infra/...",
			testutil.Under(testutil.ModulePath+"/"+layer), "infra must not reach "+layer)
	}
}
