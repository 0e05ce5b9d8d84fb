// Package storage reads process documents from and writes reports to object
// storage.
//
// Backends register themselves with RegisterFactory from an init function,
// so callers import the ones they need:
//
//	import (
//	    _ "github.com/kbukum/flowreport/storage/local"
//	    _ "github.com/kbukum/flowreport/storage/s3"
//	)
//
//	storage:
//	  enabled: true
//	  provider: s3
//	  bucket: process-models
//	  region: eu-central-1
//
// Missing objects are reported as NOT_FOUND and backend failures as
// STORAGE_ERROR application errors.
package storage
