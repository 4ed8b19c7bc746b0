// Package store is the typed persistence layer over a storage.Medium.
//
// Every key lives under a namespace prefix and has a default in a single
// static table. Load never fails: a missing or malformed value yields the
// default and is logged. Save reports failure as false. Stored JSON is
// decoded over a fresh default, so records written before a field existed
// load with that field at its default value.
package store
