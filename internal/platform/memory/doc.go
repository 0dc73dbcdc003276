// Package memory implements the store interfaces on top of process memory.
// Data lives exactly as long as the process; nothing is persisted.
package memory
