package mysql

import (
	"time"

	"gorm.io/gorm"

	"sozluk/internal/model"
)

type StatsRepository struct {
	DB *gorm.DB
}

type Totals struct {
	Users   int64 `json:"users"`
	Topics  int64 `json:"topics"`
	Entries int64 `json:"entries"`
	Votes   int64 `json:"votes"`
}

type Recent struct {
	Users   int64 `json:"users"`
	Topics  int64 `json:"topics"`
	Entries int64 `json:"entries"`
}

func (r *StatsRepository) Totals() (*Totals, error) {
	var t Totals
	if err := r.DB.Model(&model.User{}).Count(&t.Users).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Topic{}).Count(&t.Topics).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Entry{}).Where("is_deleted = ?", false).Count(&t.Entries).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Vote{}).Count(&t.Votes).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// RecentSince counts rows created after the cutoff.
func (r *StatsRepository) RecentSince(cutoff time.Time) (*Recent, error) {
	var rec Recent
	if err := r.DB.Model(&model.User{}).Where("created_at >= ?", cutoff).Count(&rec.Users).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Topic{}).Where("created_at >= ?", cutoff).Count(&rec.Topics).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Entry{}).
		Where("is_deleted = ? AND created_at >= ?", false, cutoff).
		Count(&rec.Entries).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}
