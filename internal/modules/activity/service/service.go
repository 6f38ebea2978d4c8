package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/activity/dto"
	"kitapantaups.id/api/internal/modules/activity/repository"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/response"
)

// Channel is the redis pub/sub channel every recorded activity is published on.
const Channel = "app_activities"

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Recorder is the audit hook other modules depend on.
type Recorder interface {
	// Record persists an activity. Failures are logged and never returned,
	// so the audit trail cannot fail the operation it describes.
	Record(ctx context.Context, activity *entity.AppActivity)
}

type ActivityService interface {
	Recorder
	Create(ctx context.Context, actor response.Actor, input dto.CreateActivityInput) (*entity.AppActivity, error)
	List(ctx context.Context, filter dto.ActivityFilter) ([]entity.AppActivity, error)
}

type activityService struct {
	repo        repository.ActivityRepository
	redisClient *redis.Client
}

func NewActivityService(repo repository.ActivityRepository, redisClient *redis.Client) ActivityService {
	return &activityService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *activityService) Record(ctx context.Context, activity *entity.AppActivity) {
	if err := s.save(ctx, activity); err != nil {
		log.Printf("⚠️ failed to record activity %s: %v", activity.Type, err)
	}
}

func (s *activityService) Create(ctx context.Context, actor response.Actor, input dto.CreateActivityInput) (*entity.AppActivity, error) {
	userID := actor.ID
	activity := &entity.AppActivity{
		Type:        input.Type,
		Description: input.Description,
		UserID:      &userID,
		UserName:    actor.Email,
		Metadata:    datatypes.JSONMap(input.Metadata),
	}
	if input.UserName != nil && *input.UserName != "" {
		activity.UserName = *input.UserName
	}
	if input.AduanID != nil {
		id, err := uuid.Parse(*input.AduanID)
		if err != nil {
			return nil, apperror.BadRequest("aduan_id tidak valid")
		}
		activity.AduanID = &id
	}

	if err := s.save(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) List(ctx context.Context, filter dto.ActivityFilter) ([]entity.AppActivity, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var aduanID *uuid.UUID
	if filter.AduanID != "" {
		id, err := uuid.Parse(filter.AduanID)
		if err != nil {
			return nil, apperror.BadRequest("aduan_id tidak valid")
		}
		aduanID = &id
	}

	return s.repo.List(ctx, aduanID, limit)
}

func (s *activityService) save(ctx context.Context, activity *entity.AppActivity) error {
	// 1. Save to DB
	if err := s.repo.Create(ctx, activity); err != nil {
		return err
	}

	// 2. Publish to Redis if Redis is available
	if s.redisClient != nil {
		payload, err := json.Marshal(activity)
		if err == nil {
			if err := s.redisClient.Publish(ctx, Channel, payload).Err(); err != nil {
				log.Printf("⚠️ failed to publish activity: %v", err)
			}
		}
	}
	return nil
}
