package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/student-service/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type JobService struct {
	Client *asynq.Client

	server *asynq.Server

	logger *zerolog.Logger

	roster RosterSource
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, workerConfig())

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// workerConfig polls only the queues this service enqueues to.
func workerConfig() asynq.Config {
	return asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			QueueDigests: 1,
		},
	}
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRosterDigest, j.handleRosterDigestTask)
	return mux
}

// Start runs the worker in the background. Handlers must be initialized first.
func (j *JobService) Start() error {
	if j.roster == nil {
		return errors.New("job handlers not initialized")
	}

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return err
	}

	return nil
}

// EnqueueRosterDigest schedules a roster digest after delay and returns the task id.
func (j *JobService) EnqueueRosterDigest(ctx context.Context, requestID string, delay time.Duration) (string, error) {
	task, err := NewRosterDigestTask(requestID, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to build roster digest task: %w", err)
	}

	var opts []asynq.Option
	if delay > 0 {
		opts = append(opts, asynq.ProcessIn(delay))
	}

	info, err := j.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue roster digest task: %w", err)
	}

	j.logger.Info().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("request_id", requestID).
		Dur("delay", delay).
		Msg("Enqueued roster digest task")

	return info.ID, nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
