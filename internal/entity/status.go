package entity

// Wire status values used by the REST API. The HTTP client matches them in
// one place and converts anything unexpected into an error, so callers never
// compare response strings themselves.
const (
	StatusSuccess     = "success"
	StatusRegistered  = "registered"
	StatusBookAdded   = "book added"
	StatusBookUpdated = "book updated"
	StatusBookDeleted = "book deleted"
	StatusBorrowed    = "borrowed"
	StatusReturned    = "returned"
	StatusDeleted     = "deleted"
)
