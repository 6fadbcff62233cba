// Package types defines the Achievement entity, filter state, blob storage
// interface, configuration, and standard error types for the achievements
// log.
package types
