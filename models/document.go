package models

// Document is the full persisted record set. Version is bumped by the
// record store on every successful save; a save whose base Version no
// longer matches the stored one is rejected.
type Document struct {
	Version int64   `json:"version" bson:"version"`
	Users   []User  `json:"users" bson:"users"`
	Admins  []Admin `json:"admins" bson:"admins"`
}

// NewDocument returns an empty zero-version document, the state of a
// store that has never been saved to.
func NewDocument() *Document {
	return &Document{Users: []User{}, Admins: []Admin{}}
}
