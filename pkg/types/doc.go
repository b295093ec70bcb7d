// Package types defines the task entity, its persisted record form, the
// Backend interface that stores plug into, configuration, and the standard
// errors shared by the todo packages.
package types
