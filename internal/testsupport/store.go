package testsupport

import (
	"context"
	"testing"

	"returnnotify/internal/config"
	"returnnotify/internal/directory"
)

// MustOpenDirectory opens a directory.Store for tests and registers cleanup.
func MustOpenDirectory(t testing.TB, cfg *config.Config) *directory.Store {
	t.Helper()

	store, err := directory.Open(cfg)
	if err != nil {
		t.Fatalf("directory.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// ReturnFixture is the reseller 7 data set used across tests: customer 5 with
// email and mobile, creator 1, expert 2, and one employee subscribed to
// tsGoodsReturn.
func ReturnFixture() directory.Fixture {
	return directory.Fixture{
		Resellers: []directory.Reseller{
			{ID: 7, Name: "Shop", Locale: "en-GB", EmailFrom: "returns@shop.example"},
		},
		Contractors: []directory.Contractor{
			{ID: 5, ResellerID: 7, Type: directory.ContractorTypeCustomer, Name: "ivan", FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com", Mobile: "+15550100"},
		},
		Employees: []directory.Employee{
			{ID: 1, ResellerID: 7, FirstName: "Cora", LastName: "Creator", Email: "cora@shop.example"},
			{ID: 2, ResellerID: 7, FirstName: "Ed", LastName: "Expert", Email: "ed@shop.example"},
		},
		Permits: []directory.Permit{
			{ResellerID: 7, EmployeeID: 2, Key: "tsGoodsReturn"},
		},
	}
}

// MustSeed loads fixture into store.
func MustSeed(t testing.TB, store *directory.Store, fixture directory.Fixture) {
	t.Helper()

	if err := store.Seed(context.Background(), fixture); err != nil {
		t.Fatalf("store.Seed: %v", err)
	}
}
