// Package fileutil prepares per-test data directories: EnsureDir creates
// directory trees and WriteFile writes small files atomically via
// temp-file-then-rename, so concurrent readers never see a partial file.
package fileutil
