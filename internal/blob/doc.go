// Package blob provides file and in-memory implementations of
// types.BlobStore. The file store keeps one JSON file per key and replaces it
// with the temp-file, fsync, rename pattern so readers never see a partial
// write.
package blob
