// Package store provides persistence adapters for the link collection.
//
// Every adapter holds the whole collection as a single JSON array under one
// fixed key. Absent or unreadable data loads as an empty collection; storage
// problems never surface to the user.
package store

// CollectionKey is the fixed key the serialized link collection lives under.
const CollectionKey = "chotalink::links"
