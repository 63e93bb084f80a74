// Package assistant provides version information for the module.
package assistant

// Version is the current version of the assistant runtime.
const Version = "0.1.0"
