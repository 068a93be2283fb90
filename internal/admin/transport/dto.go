// Package transport defines the admin wire contracts.
package transport

// GeoBackfillRequest asks the worker to resolve a batch of IPs.
type GeoBackfillRequest struct {
	IPs []string `json:"ips" validate:"required,min=1,max=500,dive,ip"`
}

// GeoBackfillResponse acknowledges an enqueued backfill.
type GeoBackfillResponse struct {
	Enqueued int `json:"enqueued"`
}
