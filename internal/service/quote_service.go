package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
)

const dailyQuoteKeyPrefix = "quote:daily:"

// QuoteService serves the shared love quotes. The daily quote is
// cached in redis until midnight; per-couple data never goes through
// this cache.
type QuoteService struct {
	quoteRepo repository.QuoteRepository
	redis     *redis.Client
}

func NewQuoteService(quoteRepo repository.QuoteRepository, redisClient *redis.Client) *QuoteService {
	return &QuoteService{
		quoteRepo: quoteRepo,
		redis:     redisClient,
	}
}

// Random returns a random active quote, or nil when none exist.
func (s *QuoteService) Random(ctx context.Context) (*domain.LoveQuote, error) {
	return s.quoteRepo.Random(ctx)
}

// Daily returns the quote of the day. Cache failures degrade to a
// direct database read.
func (s *QuoteService) Daily(ctx context.Context) (*domain.LoveQuote, error) {
	now := time.Now()
	key := dailyQuoteKeyPrefix + now.Format("2006-01-02")

	if payload, err := s.redis.Get(ctx, key).Result(); err == nil {
		var quote domain.LoveQuote
		if err := json.Unmarshal([]byte(payload), &quote); err == nil {
			return &quote, nil
		}
		log.Printf("[QUOTE] corrupt cache entry for %s, refetching", key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[QUOTE] cache read failed: %v", err)
	}

	quote, err := s.quoteRepo.Random(ctx)
	if err != nil || quote == nil {
		return quote, err
	}

	payload, err := json.Marshal(quote)
	if err != nil {
		return quote, nil
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if err := s.redis.Set(ctx, key, payload, time.Until(midnight)).Err(); err != nil {
		log.Printf("[QUOTE] cache write failed: %v", err)
	}

	return quote, nil
}
