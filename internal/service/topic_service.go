package service

import (
	"context"
	"encoding/json"
	"math_quiz_backend/internal/model"
	"math_quiz_backend/internal/repository"
	"math_quiz_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	topicCacheKey = "topics:active"
	topicCacheTTL = 10 * time.Minute
)

// TopicService 主题领域目录，列表走 Redis 缓存（主题极少变动）
type TopicService struct {
	repo *repository.TopicRepository
	rdb  *redis.Client
}

func NewTopicService(repo *repository.TopicRepository, rdb *redis.Client) *TopicService {
	return &TopicService{repo: repo, rdb: rdb}
}

func (s *TopicService) ListTopics(ctx context.Context) ([]model.TopicArea, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, topicCacheKey).Result()
		if err == nil {
			var topics []model.TopicArea
			if jsonErr := json.Unmarshal([]byte(cached), &topics); jsonErr == nil {
				return topics, nil
			}
		}
	}

	topics, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		data, jsonErr := json.Marshal(topics)
		if jsonErr == nil {
			if err := s.rdb.Set(ctx, topicCacheKey, data, topicCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache topics", zap.Error(err))
			}
		}
	}

	return topics, nil
}
