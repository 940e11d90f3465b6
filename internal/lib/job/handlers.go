package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/student-service/internal/model"
	"github.com/hibiken/asynq"
)

// RosterSource is the read side the roster digest needs.
type RosterSource interface {
	JoinStudentNames(ctx context.Context) (string, error)
	FindStudentWithHighestGpa(ctx context.Context) (*model.Student, error)
}

// InitHandlers sets the data source used by task handlers.
// It must be called before Start.
func (j *JobService) InitHandlers(source RosterSource) {
	j.roster = source
}

func (j *JobService) handleRosterDigestTask(ctx context.Context, t *asynq.Task) error {
	var p RosterDigestPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal roster digest payload: %w", err)
	}

	logger := j.logger.With().
		Str("type", "roster_digest").
		Str("request_id", p.RequestID).
		Logger()

	logger.Info().Msg("Processing roster digest task")

	names, err := j.roster.JoinStudentNames(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build roster names")
		return err // Asynq marks the task failed and schedules a retry
	}

	top, err := j.roster.FindStudentWithHighestGpa(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to find top student")
		return err
	}

	event := logger.Info().Str("names", names)
	if top != nil {
		event = event.
			Int64("top_student_id", top.ID).
			Str("top_student_name", top.Name).
			Float64("top_student_gpa", top.GPA)
	}
	event.Msg("Roster digest")

	return nil
}
