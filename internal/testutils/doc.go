// Package testutils provides helpers shared by tests across packages: JWT
// configuration and bearer headers, and a captured JSON log buffer.
//
// Only _test.go files import this package, so the testing and testify
// dependencies never reach the server or token binaries.
package testutils
