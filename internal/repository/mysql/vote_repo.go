package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sozluk/internal/model"
)

type VoteRepository struct {
	DB *gorm.DB
}

// Toggle applies one vote action for (entryID, userID): no prior vote
// creates one, the same value removes it, a different value overwrites
// it. The resulting vote (nil when removed) and the entry's new sum are
// computed inside one transaction, so the returned total always matches
// what was written. Concurrent first votes race onto the unique
// (entry_id, user_id) index; the loser surfaces the constraint error.
func (r *VoteRepository) Toggle(ctx context.Context, entryID, userID uint64, value int) (*model.Vote, int64, error) {
	var result *model.Vote
	var total int64

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Vote
		err := tx.Where("entry_id = ? AND user_id = ?", entryID, userID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := model.Vote{EntryID: entryID, UserID: userID, Value: value}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			result = &created
		case err != nil:
			return err
		case existing.Value == value:
			if err := tx.Delete(&model.Vote{}, existing.ID).Error; err != nil {
				return err
			}
			result = nil
		default:
			existing.Value = value
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = &existing
		}

		var err2 error
		total, err2 = sumForEntry(tx, entryID)
		return err2
	})
	return result, total, err
}

func (r *VoteRepository) FindByEntryUser(entryID, userID uint64) (*model.Vote, error) {
	var vote model.Vote
	err := r.DB.Where("entry_id = ? AND user_id = ?", entryID, userID).First(&vote).Error
	return &vote, err
}

// State returns the entry's aggregate sum and vote count.
func (r *VoteRepository) State(entryID uint64) (total, count int64, err error) {
	if total, err = sumForEntry(r.DB, entryID); err != nil {
		return 0, 0, err
	}
	err = r.DB.Model(&model.Vote{}).Where("entry_id = ?", entryID).Count(&count).Error
	return total, count, err
}

// SumsForEntries computes per-entry vote sums in one grouped query.
func (r *VoteRepository) SumsForEntries(entryIDs []uint64) (map[uint64]int64, error) {
	sums := make(map[uint64]int64, len(entryIDs))
	if len(entryIDs) == 0 {
		return sums, nil
	}

	type row struct {
		EntryID uint64
		Total   int64
	}
	var rows []row
	err := r.DB.Model(&model.Vote{}).
		Select("entry_id, COALESCE(SUM(value), 0) AS total").
		Where("entry_id IN ?", entryIDs).
		Group("entry_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		sums[row.EntryID] = row.Total
	}
	return sums, nil
}

func sumForEntry(tx *gorm.DB, entryID uint64) (int64, error) {
	var total int64
	err := tx.Model(&model.Vote{}).
		Select("COALESCE(SUM(value), 0)").
		Where("entry_id = ?", entryID).
		Scan(&total).Error
	return total, err
}
