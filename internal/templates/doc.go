// Package templates renders localized notification texts for resellers.
//
// Texts live in a TOML catalog keyed by language tag and message key. An
// embedded default catalog ships with the binary; an override file named by
// [templates] catalog_path is merged on top of it. Placeholders are written
// as #KEY# and replaced with the supplied values. A key missing from every
// language renders as the key itself.
package templates
