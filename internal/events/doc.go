// Package events provides types and interfaces for publishing task lifecycle
// events.
//
// The task service emits a TaskEvent after every successful create, update
// and delete. Handlers such as the metrics gauge updater subscribe through an
// EventEmitter without the service knowing about them.
package events
