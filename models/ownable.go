package models

// Ownable is the capability checked by the ownership middleware: a resource
// exposes the id of the user allowed to mutate it. Implemented per entity
// and selected at the call site.
type Ownable interface {
	OwnerID() uint
}
