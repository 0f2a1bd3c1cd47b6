package blob

import (
	"testing"

	"legislativelens/testutil"
)

var infraBlob = testutil.Under(testutil.ModulePath + "/internal/infra/blob")

// TestConsumersOpenStoresThroughBlob keeps the fixture loader, the catalog
// and the CLI on blob.Store; only this package picks a backend.
func TestConsumersOpenStoresThroughBlob(t *testing.T) {
	for _, dir := range []string{
		"../fixture",
		"../core",
		"../congress",
		"../config",
		"../adapters/legislation",
		"../../cmd/lens",
	} {
		testutil.AssertNoDirectImports(t, dir, infraBlob, dir+" must reach backends through internal/blob")
	}
}

// TestBackendsDoNotKnowFixtures keeps the storage backends generic: they move
// bytes and never learn about fixture records or the catalog. The only
// package they share with the facade is the driver types in blob/core.
func TestBackendsDoNotKnowFixtures(t *testing.T) {
	driverTypes := testutil.Under(testutil.ModulePath + "/internal/blob/core")
	forbidden := map[string]testutil.ImportPredicate{
		"internal/fixture": testutil.Under(testutil.ModulePath + "/internal/fixture"),
		"internal/core":    testutil.Under(testutil.ModulePath + "/internal/core"),
		"internal/blob": func(path string) bool {
			return testutil.Under(testutil.ModulePath+"/internal/blob")(path) && !driverTypes(path)
		},
	}
	for layer, pred := range forbidden {
		testutil.AssertNoTransitiveDependency(t, testutil.ModulePath+"/internal/infra/blob/...", pred,
			"blob backends must not reach "+layer)
	}
}
