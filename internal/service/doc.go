// Package service implements the application's use cases on top of the
// store interfaces. It logs each operation, translates store errors into
// service-level errors, and publishes task lifecycle events after every
// successful mutation.
package service
