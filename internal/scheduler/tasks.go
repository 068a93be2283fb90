package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskGeoBackfill = "geo.backfill"

// GeoBackfillPayload carries the IPs whose locations should be resolved and
// warmed into the geo cache.
type GeoBackfillPayload struct {
	IPs []string `json:"ips"`
}

func NewGeoBackfillTask(payload GeoBackfillPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGeoBackfill, data), nil
}

func ParseGeoBackfillPayload(task *asynq.Task) (GeoBackfillPayload, error) {
	var payload GeoBackfillPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GeoBackfillPayload{}, err
	}
	return payload, nil
}
