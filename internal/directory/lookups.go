package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Lookups return (nil, nil) when the record does not exist; errors are
// reserved for database failures.

// ResellerByID loads a reseller.
func (s *Store) ResellerByID(ctx context.Context, id int64) (*Reseller, error) {
	ctx = ensureContext(ctx)
	var r Reseller
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`SELECT id, name, locale, email_from FROM resellers WHERE id = ?`, id,
		).Scan(&r.ID, &r.Name, &r.Locale, &r.EmailFrom)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load reseller %d: %w", id, err)
	}
	return &r, nil
}

// ContractorByID loads a contractor.
func (s *Store) ContractorByID(ctx context.Context, id int64) (*Contractor, error) {
	ctx = ensureContext(ctx)
	var c Contractor
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`SELECT id, reseller_id, type, name, first_name, last_name, email, mobile
			 FROM contractors WHERE id = ?`, id,
		).Scan(&c.ID, &c.ResellerID, &c.Type, &c.Name, &c.FirstName, &c.LastName, &c.Email, &c.Mobile)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load contractor %d: %w", id, err)
	}
	return &c, nil
}

// EmployeeByID loads an employee.
func (s *Store) EmployeeByID(ctx context.Context, id int64) (*Employee, error) {
	ctx = ensureContext(ctx)
	var e Employee
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			`SELECT id, reseller_id, first_name, last_name, email FROM employees WHERE id = ?`, id,
		).Scan(&e.ID, &e.ResellerID, &e.FirstName, &e.LastName, &e.Email)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load employee %d: %w", id, err)
	}
	return &e, nil
}

// ResellerEmailFrom returns the sender address configured for a reseller, or
// "" when the reseller has none.
func (s *Store) ResellerEmailFrom(ctx context.Context, resellerID int64) (string, error) {
	reseller, err := s.ResellerByID(ctx, resellerID)
	if err != nil || reseller == nil {
		return "", err
	}
	return strings.TrimSpace(reseller.EmailFrom), nil
}

// EmailsByPermit lists the non-empty addresses of employees subscribed to
// permit for the reseller, in employee id order.
func (s *Store) EmailsByPermit(ctx context.Context, resellerID int64, permit string) ([]string, error) {
	ctx = ensureContext(ctx)
	var emails []string
	err := retryOnBusy(ctx, func() error {
		emails = emails[:0]
		rows, err := s.db.QueryContext(ctx,
			`SELECT e.email FROM employee_permits p
			 JOIN employees e ON e.id = p.employee_id
			 WHERE p.reseller_id = ? AND p.permit = ? AND TRIM(e.email) <> ''
			 ORDER BY e.id`, resellerID, permit)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var email string
			if err := rows.Scan(&email); err != nil {
				return err
			}
			emails = append(emails, strings.TrimSpace(email))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list %s emails for reseller %d: %w", permit, resellerID, err)
	}
	return emails, nil
}

// StatusName returns the display name of a return status, or "" when unknown.
func (s *Store) StatusName(ctx context.Context, code int64) (string, error) {
	ctx = ensureContext(ctx)
	var name string
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, `SELECT name FROM return_statuses WHERE code = ?`, code).Scan(&name)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load status %d: %w", code, err)
	}
	return name, nil
}

// Counts summarizes how many records of each kind the directory holds.
type Counts struct {
	Resellers   int
	Contractors int
	Employees   int
	Permits     int
	Statuses    int
}

// Counts reports table sizes for status output.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	ctx = ensureContext(ctx)
	var counts Counts
	targets := []struct {
		table string
		dst   *int
	}{
		{"resellers", &counts.Resellers},
		{"contractors", &counts.Contractors},
		{"employees", &counts.Employees},
		{"employee_permits", &counts.Permits},
		{"return_statuses", &counts.Statuses},
	}
	for _, target := range targets {
		query := "SELECT COUNT(1) FROM " + target.table
		if err := retryOnBusy(ctx, func() error {
			return s.db.QueryRowContext(ctx, query).Scan(target.dst)
		}); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", target.table, err)
		}
	}
	return counts, nil
}
