package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CampaignStore 封装活动与访问记录的持久化操作。
type CampaignStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCampaignStore 创建基于 gorm 的存储，默认使用系统时钟。
func NewCampaignStore(gdb *gorm.DB) *CampaignStore {
	return &CampaignStore{db: gdb, now: time.Now}
}

// WithClock 允许在测试中替换写入时间的来源。
func (s *CampaignStore) WithClock(now func() time.Time) *CampaignStore {
	if now == nil {
		return s
	}
	s.now = now
	return s
}

// FindCampaign 按 id 查找活动；不存在时返回 (nil, nil)。
func (s *CampaignStore) FindCampaign(ctx context.Context, id uint) (*Campaign, error) {
	var campaign Campaign
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&campaign).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find campaign %d: %w", id, err)
	}
	return &campaign, nil
}

// InsertVisit 在事务中写入一条访问记录，并回填分配的 id 与时间。
func (s *CampaignStore) InsertVisit(ctx context.Context, visit *Visit) error {
	if visit == nil {
		return fmt.Errorf("%w: nil visit", ErrInvalidVisit)
	}
	if err := visit.Validate(); err != nil {
		return err
	}
	if visit.Time == 0 {
		visit.Time = s.now().Unix()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(visit).Error; err != nil {
			return fmt.Errorf("insert visit: %w", err)
		}
		return nil
	})
}

// CreateCampaign 写入一个新活动，供运营脚本与测试使用。
func (s *CampaignStore) CreateCampaign(ctx context.Context, campaign *Campaign) error {
	if campaign == nil {
		return errors.New("nil campaign")
	}
	if campaign.Time == 0 {
		campaign.Time = s.now().Unix()
	}
	if err := s.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

// CountVisits 统计某个活动的访问记录条数。
func (s *CampaignStore) CountVisits(ctx context.Context, campaignID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Visit{}).Where("campaign_id = ?", campaignID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count visits: %w", err)
	}
	return count, nil
}
