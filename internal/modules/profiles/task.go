package profiles

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/politiekmatcher/core/internal/models"
	"github.com/politiekmatcher/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskTypeClassify is the async classify-and-match task for one response.
const TaskTypeClassify = "match:classify"

// ClassifyPayload is the task payload for async classification.
type ClassifyPayload struct {
	ResponseID string `json:"response_id"`
}

// EnqueueClassify schedules the classify-and-match pipeline for a response.
// The response ID doubles as the dedup key, so a response that is already
// queued is not queued twice.
func (s *Service) EnqueueClassify(ctx context.Context, responseID string) (*taskqueue.Task, error) {
	payload := ClassifyPayload{ResponseID: responseID}
	task, err := s.taskSvc.Enqueue(ctx, TaskTypeClassify, payload, responseID, "")
	if err != nil {
		return nil, err
	}

	// Execute immediately in a goroutine (in production use a worker pool)
	if task.Status == taskqueue.TaskPending {
		go s.executeClassify(context.Background(), task.ID, payload)
	}

	return task, nil
}

func (s *Service) executeClassify(ctx context.Context, taskID string, payload ClassifyPayload) {
	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	var resp models.UserResponseModel
	if err := s.db.First(&resp, "id = ?", payload.ResponseID).Error; err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, "response not found")
		return
	}

	var statement models.StatementModel
	if err := s.db.First(&statement, "id = ?", resp.StatementID).Error; err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, "statement not found")
		return
	}

	if err := s.RecomputeResponse(ctx, &resp, &statement); err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		return
	}

	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, gin.H{
		"label":      resp.Label,
		"confidence": resp.LabelConfidence,
		"source":     resp.LabelSource,
	}, "")
}

// GetTask exposes task lookup for the handler layer.
func (s *Service) GetTask(ctx context.Context, id string) (*taskqueue.Task, error) {
	return s.taskSvc.GetByID(ctx, id)
}

// RetryTask re-enqueues a failed or cancelled classification task.
func (s *Service) RetryTask(ctx context.Context, task *taskqueue.Task) (*taskqueue.Task, error) {
	var payload ClassifyPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		return nil, err
	}
	return s.EnqueueClassify(ctx, payload.ResponseID)
}

// SweepUnclassified enqueues classification for responses that never received
// a label, typically because they were submitted while inference was down.
// Runs from the scheduler; returns how many responses were queued.
func (s *Service) SweepUnclassified(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}

	var pending []models.UserResponseModel
	err := s.db.
		Where("label = ? OR label_source = ?", "", "").
		Limit(limit).
		Find(&pending).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	queued := 0
	for i := range pending {
		if _, err := s.EnqueueClassify(ctx, pending[i].ID); err != nil {
			s.logger.Warn("sweep enqueue failed",
				zap.String("response_id", pending[i].ID),
				zap.Error(err))
			continue
		}
		queued++
	}
	return queued, nil
}
