package domain

import (
	"encoding/json"
	"fmt"
)

// SavedFilter is a named set of filter criteria stored for a user.
// Ownership is the caller-supplied user id; nothing binds it to a session.
type SavedFilter struct {
	UserID  int64         `json:"user_id" db:"user_id"`
	Name    string        `json:"name" db:"name"`
	Filters FilterPayload `json:"filters" db:"filters"`
}

// FilterPayload is the open key/value body of a saved filter, stored as jsonb.
type FilterPayload map[string]interface{}

// Scan implements sql.Scanner.
func (fp *FilterPayload) Scan(src interface{}) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("domain: scan filter payload: %w", err)
	}
	payload := FilterPayload{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("domain: decode filter payload: %w", err)
		}
	}
	*fp = payload
	return nil
}
