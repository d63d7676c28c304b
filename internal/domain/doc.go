// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/project). This root
// package holds the sentinel errors and the field-level validation error
// shared by every boundary that checks untrusted data.
package domain
