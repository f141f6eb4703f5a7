package directory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"returnnotify/internal/directory"
	"returnnotify/internal/testsupport"
)

func TestLookupsReturnSeededRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenDirectory(t, cfg)
	testsupport.MustSeed(t, store, testsupport.ReturnFixture())
	ctx := context.Background()

	reseller, err := store.ResellerByID(ctx, 7)
	if err != nil {
		t.Fatalf("ResellerByID: %v", err)
	}
	if reseller == nil || reseller.EmailFrom != "returns@shop.example" {
		t.Fatalf("unexpected reseller %+v", reseller)
	}

	client, err := store.ContractorByID(ctx, 5)
	if err != nil {
		t.Fatalf("ContractorByID: %v", err)
	}
	if client == nil || !client.IsCustomer() || client.ResellerID != 7 {
		t.Fatalf("unexpected contractor %+v", client)
	}
	if client.DisplayName() != "Ivan Petrov" {
		t.Fatalf("unexpected display name %q", client.DisplayName())
	}

	expert, err := store.EmployeeByID(ctx, 2)
	if err != nil {
		t.Fatalf("EmployeeByID: %v", err)
	}
	if expert == nil || expert.FullName() != "Ed Expert" {
		t.Fatalf("unexpected employee %+v", expert)
	}
}

func TestLookupsReturnNilWhenMissing(t *testing.T) {
	store := testsupport.MustOpenDirectory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if r, err := store.ResellerByID(ctx, 99); err != nil || r != nil {
		t.Fatalf("expected nil reseller, got %+v err=%v", r, err)
	}
	if c, err := store.ContractorByID(ctx, 99); err != nil || c != nil {
		t.Fatalf("expected nil contractor, got %+v err=%v", c, err)
	}
	if e, err := store.EmployeeByID(ctx, 99); err != nil || e != nil {
		t.Fatalf("expected nil employee, got %+v err=%v", e, err)
	}
	from, err := store.ResellerEmailFrom(ctx, 99)
	if err != nil || from != "" {
		t.Fatalf("expected empty sender, got %q err=%v", from, err)
	}
}

func TestEmailsByPermitFiltersByResellerAndPermit(t *testing.T) {
	store := testsupport.MustOpenDirectory(t, testsupport.NewConfig(t))
	fixture := testsupport.ReturnFixture()
	fixture.Employees = append(fixture.Employees,
		directory.Employee{ID: 3, ResellerID: 7, FirstName: "No", LastName: "Mail"},
		directory.Employee{ID: 4, ResellerID: 8, FirstName: "Other", LastName: "Shop", Email: "other@shop.example"},
	)
	fixture.Permits = append(fixture.Permits,
		directory.Permit{ResellerID: 7, EmployeeID: 1, Key: "tsGoodsReturn"},
		directory.Permit{ResellerID: 7, EmployeeID: 3, Key: "tsGoodsReturn"},
		directory.Permit{ResellerID: 8, EmployeeID: 4, Key: "tsGoodsReturn"},
		directory.Permit{ResellerID: 7, EmployeeID: 4, Key: "somethingElse"},
	)
	testsupport.MustSeed(t, store, fixture)

	emails, err := store.EmailsByPermit(context.Background(), 7, "tsGoodsReturn")
	if err != nil {
		t.Fatalf("EmailsByPermit: %v", err)
	}
	want := []string{"cora@shop.example", "ed@shop.example"}
	if len(emails) != len(want) {
		t.Fatalf("unexpected emails %v", emails)
	}
	for i := range want {
		if emails[i] != want[i] {
			t.Fatalf("emails[%d] = %q, want %q", i, emails[i], want[i])
		}
	}
}

func TestStatusNamesAreSeededWithDefaults(t *testing.T) {
	store := testsupport.MustOpenDirectory(t, testsupport.NewConfig(t))
	ctx := context.Background()

	name, err := store.StatusName(ctx, 2)
	if err != nil || name != "Rejected" {
		t.Fatalf("expected Rejected, got %q err=%v", name, err)
	}
	testsupport.MustSeed(t, store, directory.Fixture{Statuses: []directory.Status{{Code: 2, Name: "Refused"}, {Code: 5, Name: "Inspected"}}})
	if name, _ := store.StatusName(ctx, 2); name != "Refused" {
		t.Fatalf("expected override, got %q", name)
	}
	if name, _ := store.StatusName(ctx, 42); name != "" {
		t.Fatalf("expected empty name for unknown status, got %q", name)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	store := testsupport.MustOpenDirectory(t, testsupport.NewConfig(t))
	testsupport.MustSeed(t, store, testsupport.ReturnFixture())
	testsupport.MustSeed(t, store, testsupport.ReturnFixture())

	counts, err := store.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts.Resellers != 1 || counts.Contractors != 1 || counts.Employees != 2 || counts.Permits != 1 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	if counts.Statuses != 3 {
		t.Fatalf("expected 3 default statuses, got %d", counts.Statuses)
	}
}

func TestLoadFixtureDecodesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.toml")
	contents := `
[[resellers]]
id = 7
email_from = "returns@shop.example"

[[contractors]]
id = 5
reseller_id = 7
name = "ivan"
mobile = "+15550100"

[[permits]]
reseller_id = 7
employee_id = 2
key = "tsGoodsReturn"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	fixture, err := directory.LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if len(fixture.Resellers) != 1 || fixture.Resellers[0].EmailFrom != "returns@shop.example" {
		t.Fatalf("unexpected resellers %+v", fixture.Resellers)
	}
	if len(fixture.Contractors) != 1 || fixture.Contractors[0].Mobile != "+15550100" {
		t.Fatalf("unexpected contractors %+v", fixture.Contractors)
	}

	store := testsupport.MustOpenDirectory(t, testsupport.NewConfig(t))
	testsupport.MustSeed(t, store, fixture)
	client, err := store.ContractorByID(context.Background(), 5)
	if err != nil || client == nil {
		t.Fatalf("expected seeded contractor, got %+v err=%v", client, err)
	}
	if client.Type != directory.ContractorTypeCustomer {
		t.Fatalf("expected default contractor type, got %q", client.Type)
	}
}

func TestSeedRejectsBlankPermitKey(t *testing.T) {
	store := testsupport.MustOpenDirectory(t, testsupport.NewConfig(t))
	err := store.Seed(context.Background(), directory.Fixture{Permits: []directory.Permit{{ResellerID: 7, EmployeeID: 1}}})
	if err == nil {
		t.Fatal("expected error for blank permit key")
	}
	if errors.Is(err, directory.ErrSchemaMismatch) {
		t.Fatalf("unexpected schema error %v", err)
	}
}
