package directory

import "strings"

// ContractorTypeCustomer marks a contractor that can receive client notifications.
const ContractorTypeCustomer = "customer"

// Reseller is the seller a return belongs to.
type Reseller struct {
	ID        int64  `toml:"id" json:"id"`
	Name      string `toml:"name" json:"name"`
	Locale    string `toml:"locale" json:"locale"`
	EmailFrom string `toml:"email_from" json:"emailFrom"`
}

// Contractor is a counterparty of a reseller. Only customers are notified.
type Contractor struct {
	ID         int64  `toml:"id" json:"id"`
	ResellerID int64  `toml:"reseller_id" json:"resellerId"`
	Type       string `toml:"type" json:"type"`
	Name       string `toml:"name" json:"name"`
	FirstName  string `toml:"first_name" json:"firstName"`
	LastName   string `toml:"last_name" json:"lastName"`
	Email      string `toml:"email" json:"email"`
	Mobile     string `toml:"mobile" json:"mobile"`
}

// FullName joins first and last name; empty when neither is set.
func (c *Contractor) FullName() string {
	return joinName(c.FirstName, c.LastName)
}

// DisplayName prefers the full name and falls back to the short name.
func (c *Contractor) DisplayName() string {
	if full := c.FullName(); full != "" {
		return full
	}
	return strings.TrimSpace(c.Name)
}

// IsCustomer reports whether the contractor is a customer.
func (c *Contractor) IsCustomer() bool {
	return c.Type == ContractorTypeCustomer
}

// Employee is a staff member of a reseller.
type Employee struct {
	ID         int64  `toml:"id" json:"id"`
	ResellerID int64  `toml:"reseller_id" json:"resellerId"`
	FirstName  string `toml:"first_name" json:"firstName"`
	LastName   string `toml:"last_name" json:"lastName"`
	Email      string `toml:"email" json:"email"`
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	return joinName(e.FirstName, e.LastName)
}

// Permit subscribes an employee to a notification permission for a reseller.
type Permit struct {
	ResellerID int64  `toml:"reseller_id" json:"resellerId"`
	EmployeeID int64  `toml:"employee_id" json:"employeeId"`
	Key        string `toml:"key" json:"key"`
}

// Status names a return status code.
type Status struct {
	Code int64  `toml:"code" json:"code"`
	Name string `toml:"name" json:"name"`
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
