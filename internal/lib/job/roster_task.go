package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskRosterDigest = "students:roster_digest"

	QueueDigests = "digests"
)

// RosterDigestPayload identifies who asked for a digest.
type RosterDigestPayload struct {
	RequestID string    `json:"request_id"`
	Requested time.Time `json:"requested_at"`
}

func NewRosterDigestTask(requestID string, requested time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(RosterDigestPayload{
		RequestID: requestID,
		Requested: requested,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRosterDigest,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDigests),
		asynq.Timeout(30*time.Second),
	), nil
}
