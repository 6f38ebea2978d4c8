package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"kitapantaups.id/api/internal/entity"
	"kitapantaups.id/api/internal/modules/activity/service"
	"kitapantaups.id/api/internal/modules/setting/dto"
	"kitapantaups.id/api/internal/modules/setting/repository"
	"kitapantaups.id/api/pkg/apperror"
	"kitapantaups.id/api/pkg/response"
)

const (
	cacheKey = "settings:all"
	cacheTTL = 10 * time.Minute
)

type SettingService interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, actor response.Actor, key string, input dto.UpdateSettingInput) (*dto.SettingResponse, error)
}

type settingService struct {
	repo        repository.SettingRepository
	redisClient *redis.Client
	activity    service.Recorder
}

// NewSettingService builds the service. redisClient may be nil, in which case
// every read goes to the database.
func NewSettingService(repo repository.SettingRepository, redisClient *redis.Client, recorder service.Recorder) SettingService {
	return &settingService{
		repo:        repo,
		redisClient: redisClient,
		activity:    recorder,
	}
}

func (s *settingService) All(ctx context.Context) (map[string]string, error) {
	if s.redisClient != nil {
		if raw, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
			cached := map[string]string{}
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	rows, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				log.Printf("⚠️ failed to cache settings: %v", err)
			}
		}
	}
	return out, nil
}

func (s *settingService) Set(ctx context.Context, actor response.Actor, key string, input dto.UpdateSettingInput) (*dto.SettingResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > 100 {
		return nil, apperror.BadRequest("Key setting tidak valid")
	}

	if err := s.repo.Upsert(ctx, key, input.Value, actor.ID); err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Del(ctx, cacheKey).Err(); err != nil {
			log.Printf("⚠️ failed to invalidate settings cache: %v", err)
		}
	}

	userID := actor.ID
	s.activity.Record(ctx, &entity.AppActivity{
		Type:        entity.ActivityUpdateSetting,
		Description: "Mengubah pengaturan: " + key,
		UserID:      &userID,
		UserName:    actor.Email,
		Metadata:    datatypes.JSONMap{"key": key},
	})

	return &dto.SettingResponse{Key: key, Value: input.Value}, nil
}
