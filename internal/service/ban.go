package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

// BanPolicy is the shared write gate: topic and entry creation both run
// the same check before touching storage.
type BanPolicy struct {
	users *mysql.UserRepository
}

func NewBanPolicy(db *gorm.DB) *BanPolicy {
	return &BanPolicy{users: &mysql.UserRepository{DB: db}}
}

// EnsureCanWrite rejects the action while the user's ban is active. A
// timed ban whose expiry has passed is cleared here, on access; there is
// no background sweep.
func (p *BanPolicy) EnsureCanWrite(userID uint64) error {
	user, err := p.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("User not found")
		}
		return err
	}

	if !user.IsBanned {
		return nil
	}

	if user.BannedUntil != nil && user.BannedUntil.Before(time.Now()) {
		return p.users.ClearExpiredBan(userID)
	}

	reason := ""
	if user.BanReason != nil {
		reason = *user.BanReason
	}
	if user.BannedUntil != nil {
		return pkg.Forbidden(fmt.Sprintf("You are banned until %s. Reason: %s",
			user.BannedUntil.Format("2006-01-02"), reason))
	}
	return pkg.Forbidden(fmt.Sprintf("You are permanently banned. Reason: %s", reason))
}
