package domain

// TripID identifies a saved trip record. It is derived from the creation
// timestamp (milliseconds since epoch, decimal) and is unique within the store.
type TripID string
