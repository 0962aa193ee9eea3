// Package watcher notices when Doxygen rewrites its XML output.
package watcher

import "context"

// FileWatcher watches a directory for changes to a fixed set of files.
type FileWatcher interface {
	// Start begins watching, calling callback with debounced, sorted file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the watcher and cleans up resources. Safe to call more than once.
	Stop() error
}
