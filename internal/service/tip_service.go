package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"barriotips/api/internal/ids"
	"barriotips/api/internal/models"
	"barriotips/api/internal/repository"
)

// TipService wraps the tip repository with a read-through redis cache for
// list queries. Cache failures degrade to direct reads.
type TipService struct {
	tips    *repository.TipRepository
	cache   *redis.Client
	listTTL time.Duration
	log     zerolog.Logger
}

func NewTipService(tips *repository.TipRepository, cache *redis.Client, listTTL time.Duration, log zerolog.Logger) *TipService {
	return &TipService{
		tips:    tips,
		cache:   cache,
		listTTL: listTTL,
		log:     log,
	}
}

func (s *TipService) Create(ctx context.Context, tip models.Tip) (models.Tip, error) {
	tip.ID = ids.New()
	if err := s.tips.Create(ctx, tip); err != nil {
		return models.Tip{}, err
	}
	s.invalidateLists(ctx)
	return s.tips.GetByID(ctx, tip.ID)
}

func (s *TipService) List(ctx context.Context, filter repository.TipFilter) ([]models.Tip, error) {
	key := listCacheKey(filter)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var tips []models.Tip
			if err := json.Unmarshal(cached, &tips); err == nil {
				return tips, nil
			}
		} else if err != redis.Nil {
			s.log.Warn().Err(err).Msg("tip list cache read failed")
		}
	}

	tips, err := s.tips.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(tips); err == nil {
			if err := s.cache.Set(ctx, key, data, s.listTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("tip list cache write failed")
			}
		}
	}

	return tips, nil
}

func (s *TipService) GetByID(ctx context.Context, id string) (models.Tip, error) {
	return s.tips.GetByID(ctx, id)
}

func (s *TipService) ListByIDs(ctx context.Context, idList []string) ([]models.Tip, error) {
	return s.tips.ListByIDs(ctx, idList)
}

func (s *TipService) Update(ctx context.Context, tip models.Tip) (models.Tip, error) {
	if err := s.tips.Update(ctx, tip); err != nil {
		return models.Tip{}, err
	}
	s.invalidateLists(ctx)
	return s.tips.GetByID(ctx, tip.ID)
}

func (s *TipService) Delete(ctx context.Context, id string) error {
	if err := s.tips.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateLists(ctx)
	return nil
}

const tipListKeyPrefix = "tips:list:"

func (s *TipService) invalidateLists(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, tipListKeyPrefix+"*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.log.Warn().Err(err).Msg("tip list cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Msg("tip list cache invalidation failed")
	}
}

func listCacheKey(filter repository.TipFilter) string {
	categories := append([]string(nil), filter.CategoryIDs...)
	barrios := append([]string(nil), filter.BarrioIDs...)
	sort.Strings(categories)
	sort.Strings(barrios)
	return tipListKeyPrefix + strings.Join(categories, ",") + "|" + strings.Join(barrios, ",")
}
