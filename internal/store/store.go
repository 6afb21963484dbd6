// Package store holds what the storage backends share.
package store

import "errors"

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("record not found")

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

// Collection names, shared by the document store and seed files.
const (
	Users                 = "users"
	Jobs                  = "jobs"
	JobSeekerPreferences  = "job_seeker_preferences"
	StartupJobPreferences = "startup_job_preferences"
)
