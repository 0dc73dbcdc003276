// Package domain contains the core business entities, value objects, and
// domain logic of the application: tasks, their priorities, partial updates
// and the aggregate statistics computed over them. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
