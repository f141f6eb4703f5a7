package directory

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Fixture is a batch of directory records, usually decoded from TOML:
//
//	[[resellers]]
//	id = 7
//	email_from = "returns@shop.example"
//
//	[[contractors]]
//	id = 5
//	reseller_id = 7
//	...
type Fixture struct {
	Resellers   []Reseller   `toml:"resellers"`
	Contractors []Contractor `toml:"contractors"`
	Employees   []Employee   `toml:"employees"`
	Permits     []Permit     `toml:"permits"`
	Statuses    []Status     `toml:"statuses"`
}

// LoadFixture decodes a TOML fixture file.
func LoadFixture(path string) (Fixture, error) {
	var fixture Fixture
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture, fmt.Errorf("read fixture: %w", err)
	}
	if err := toml.Unmarshal(data, &fixture); err != nil {
		return fixture, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return fixture, nil
}

// Seed upserts every record of the fixture in a single transaction.
func (s *Store) Seed(ctx context.Context, fixture Fixture) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin seed tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		for _, r := range fixture.Resellers {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO resellers (id, name, locale, email_from) VALUES (?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET name = excluded.name, locale = excluded.locale, email_from = excluded.email_from`,
				r.ID, r.Name, r.Locale, strings.TrimSpace(r.EmailFrom)); err != nil {
				return fmt.Errorf("seed reseller %d: %w", r.ID, err)
			}
		}
		for _, c := range fixture.Contractors {
			kind := strings.TrimSpace(c.Type)
			if kind == "" {
				kind = ContractorTypeCustomer
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO contractors (id, reseller_id, type, name, first_name, last_name, email, mobile)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET reseller_id = excluded.reseller_id, type = excluded.type,
				   name = excluded.name, first_name = excluded.first_name, last_name = excluded.last_name,
				   email = excluded.email, mobile = excluded.mobile`,
				c.ID, c.ResellerID, kind, c.Name, c.FirstName, c.LastName, c.Email, c.Mobile); err != nil {
				return fmt.Errorf("seed contractor %d: %w", c.ID, err)
			}
		}
		for _, e := range fixture.Employees {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO employees (id, reseller_id, first_name, last_name, email) VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET reseller_id = excluded.reseller_id, first_name = excluded.first_name,
				   last_name = excluded.last_name, email = excluded.email`,
				e.ID, e.ResellerID, e.FirstName, e.LastName, e.Email); err != nil {
				return fmt.Errorf("seed employee %d: %w", e.ID, err)
			}
		}
		for _, p := range fixture.Permits {
			if strings.TrimSpace(p.Key) == "" {
				return fmt.Errorf("seed permit for employee %d: key is required", p.EmployeeID)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO employee_permits (reseller_id, employee_id, permit) VALUES (?, ?, ?)`,
				p.ResellerID, p.EmployeeID, strings.TrimSpace(p.Key)); err != nil {
				return fmt.Errorf("seed permit %s for employee %d: %w", p.Key, p.EmployeeID, err)
			}
		}
		for _, st := range fixture.Statuses {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO return_statuses (code, name) VALUES (?, ?)
				 ON CONFLICT(code) DO UPDATE SET name = excluded.name`,
				st.Code, st.Name); err != nil {
				return fmt.Errorf("seed status %d: %w", st.Code, err)
			}
		}

		return tx.Commit()
	})
}
