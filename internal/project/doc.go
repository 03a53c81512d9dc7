// Package project defines the in-memory model of a PEunion build project: the
// global build settings, the ordered list of drop items and the validation
// engine that classifies problems with them.
//
// # Model
//
// A Project owns an ordered sequence of Items. Item is a closed sum type with
// three variants:
//
//   - *FileItem: a local file that is embedded into the output binary.
//   - *UrlItem: a file that is downloaded at run time.
//   - *MessageBoxItem: a message box shown at run time.
//
// FileItem and UrlItem share the Droppable capability set (name, drop
// location, drop action, execution and anti-analysis flags). Callers switch
// on the concrete type or on Kind():
//
//	switch it := item.(type) {
//	case *project.FileItem:
//	case *project.UrlItem:
//	case *project.MessageBoxItem:
//	}
//
// Item order matters. It defines the "first occurrence" for name conflicts and
// duplicate detection, and it is preserved by load and save.
//
// # Change notification
//
// Every setter on Project and on an attached Item is a mutation entry point.
// It runs in two phases: the field is assigned and a Change is published to
// all subscribed Sinks, then the project is marked dirty, which synchronously
// recomputes the validation Result and publishes it. Validation never calls a
// setter, so the cycle terminates.
//
// # Concurrency
//
// A Project is owned by one editing session. It performs no locking and must
// not be mutated from multiple goroutines without external synchronization.
package project
