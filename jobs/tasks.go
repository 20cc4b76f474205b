package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskClassifierAccuracyScan recomputes the classifier accuracy snapshot
	// from records that carry a self-reported category.
	TaskClassifierAccuracyScan = "classifier:accuracy_scan"
)

// AccuracyScanPayload carries the trigger context of a scan. The scan itself
// always covers the whole ledger; Owner only records who prompted it.
type AccuracyScanPayload struct {
	Owner string `json:"owner,omitempty"`
}

// NewAccuracyScanTask constructs an Asynq task.
func NewAccuracyScanTask(payload AccuracyScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskClassifierAccuracyScan, data), nil
}
