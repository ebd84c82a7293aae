package entity

import "time"

// OrderIntent is the in-progress selection captured when checkout is
// interrupted by a login redirect. It lives in ephemeral storage under a
// browser-held reference and is consumed at most once.
type OrderIntent struct {
	ServiceID string    `json:"service_id"`
	PackageID string    `json:"package_id"`
	CreatedAt time.Time `json:"created_at"`
}
