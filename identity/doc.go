// Package identity captures the device+inode pair of the backing file, so
// metadata queries against that specific file can be told apart from queries
// against any other file the process happens to touch.
package identity
