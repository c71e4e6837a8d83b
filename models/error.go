package models

// Error is the JSON body of every failed request.
type Error struct {
	Message string `json:"message"`
}
