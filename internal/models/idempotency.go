package models

import "time"

// IdempotencyKey tracks processed initiation requests so replays return the
// original response instead of creating duplicate transactions
type IdempotencyKey struct {
	CreatedAt      time.Time `json:"created_at"`
	Key            string    `json:"key"`
	RequestPath    string    `json:"request_path"`
	ResponseBody   string    `json:"response_body"`
	ResponseStatus int       `json:"response_status"`
}
