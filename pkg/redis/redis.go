package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"time"
)

// RuleCacheTTL bounds how stale a widget's trigger rules may be after an
// owner edits them without an explicit invalidation.
const RuleCacheTTL = 5 * time.Minute

type CachedRule struct {
	ID       string `json:"id"`
	Trigger  string `json:"trigger"`
	Response string `json:"response"`
	IsAI     bool   `json:"is_ai"`
}

type IRedis interface {
	SetOTP(ctx context.Context, key string, code string, expiration time.Duration) error
	GetOTP(ctx context.Context, key string) (string, error)
	DeleteOTP(ctx context.Context, key string) error
	SetChatbotRules(ctx context.Context, chatbotID string, rules []CachedRule) error
	GetChatbotRules(ctx context.Context, chatbotID string) ([]CachedRule, error)
	InvalidateChatbotRules(ctx context.Context, chatbotID string) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) SetOTP(ctx context.Context, key string, code string, expiration time.Duration) error {
	if err := r.client.Set(ctx, otpKey(key), code, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error setting OTP for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetOTP(ctx context.Context, key string) (string, error) {
	code, err := r.client.Get(ctx, otpKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New("OTP expired or not found")
		}
		logrus.Error(fmt.Sprintf("Error getting OTP for key %s: %v", key, err))
		return "", err
	}
	return code, nil
}

func (r *redisClient) DeleteOTP(ctx context.Context, key string) error {
	return r.client.Del(ctx, otpKey(key)).Err()
}

func (r *redisClient) SetChatbotRules(ctx context.Context, chatbotID string, rules []CachedRule) error {
	payload, err := json.Marshal(rules)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, rulesKey(chatbotID), payload, RuleCacheTTL).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching rules for chatbot %s: %v", chatbotID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetChatbotRules(ctx context.Context, chatbotID string) ([]CachedRule, error) {
	payload, err := r.client.Get(ctx, rulesKey(chatbotID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rules []CachedRule
	if err := json.Unmarshal([]byte(payload), &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *redisClient) InvalidateChatbotRules(ctx context.Context, chatbotID string) error {
	return r.client.Del(ctx, rulesKey(chatbotID)).Err()
}

func otpKey(key string) string {
	return "otp:" + key
}

func rulesKey(chatbotID string) string {
	return "chatbot:rules:" + chatbotID
}
