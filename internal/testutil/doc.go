// Package testutil holds helpers shared by tests: thread-safe output
// buffers, temporary project trees and an App harness.
package testutil
