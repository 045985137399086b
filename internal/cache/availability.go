package cache

import (
	"context"
	"fmt"

	"campus-parking/internal/model"
	apperrors "campus-parking/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// SectionAvailabilityCache 區段可用名額的 redis 快照，給查詢端讀。
// 只是顯示用的提示，權威資料永遠是 DB 的列；漂移可接受，提交後刷新
type SectionAvailabilityCache interface {
	Refresh(ctx context.Context, section *model.ParkingSection) error
	Remaining(ctx context.Context, sectionID int) (int, error)
	Invalidate(ctx context.Context, sectionID int) error
}

type SectionAvailabilityCacheImpl struct {
	client *redis.Client
}

func NewSectionAvailabilityCache(client *redis.Client) SectionAvailabilityCache {
	return &SectionAvailabilityCacheImpl{
		client: client,
	}
}

func (c *SectionAvailabilityCacheImpl) getKey(sectionID int) string {
	return fmt.Sprintf("section:%d:availability", sectionID)
}

func (c *SectionAvailabilityCacheImpl) Refresh(ctx context.Context, section *model.ParkingSection) error {
	key := c.getKey(section.ID)
	return c.client.HSet(ctx, key, map[string]interface{}{
		"total":       section.TotalCapacity,
		"reserved":    section.ReservedCount,
		"parked":      section.ParkedCount,
		"unavailable": section.UnavailableCount,
	}).Err()
}

// Remaining 用 Lua 腳本一次讀四個欄位算剩餘名額，避免讀到刷新到一半的快照
func (c *SectionAvailabilityCacheImpl) Remaining(ctx context.Context, sectionID int) (int, error) {
	key := c.getKey(sectionID)

	script := `
		local info = redis.call('HMGET', KEYS[1], 'total', 'reserved', 'parked', 'unavailable')
		local total = info[1]
		if not total then
			return -1 -- 快照不存在
		end
		local remaining = tonumber(total) - tonumber(info[2]) - tonumber(info[3]) - tonumber(info[4])
		if remaining < 0 then
			remaining = 0
		end
		return remaining
	`

	result, err := c.client.Eval(ctx, script, []string{key}).Int()
	if err != nil {
		return 0, err
	}
	if result < 0 {
		return 0, apperrors.ErrSectionNotFound
	}

	return result, nil
}

func (c *SectionAvailabilityCacheImpl) Invalidate(ctx context.Context, sectionID int) error {
	return c.client.Del(ctx, c.getKey(sectionID)).Err()
}
