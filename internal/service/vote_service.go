package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

type VoteService struct {
	repo    *mysql.VoteRepository
	entries *mysql.EntryRepository
}

// VoteResult reports the outcome of one toggle: the live vote (nil when
// the action removed it) and the entry's new aggregate sum.
type VoteResult struct {
	Vote  *model.Vote `json:"vote"`
	Total int64       `json:"total"`
}

// VoteState is the read-only view of an entry's votes.
type VoteState struct {
	Total    int64 `json:"total"`
	Count    int64 `json:"count"`
	UserVote *int  `json:"userVote"`
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{
		repo:    &mysql.VoteRepository{DB: db},
		entries: &mysql.EntryRepository{DB: db},
	}
}

// Toggle is the create/flip/remove state machine for one user's vote on
// one entry. value must be +1 or -1 (validated at the handler).
func (s *VoteService) Toggle(ctx context.Context, entryID, userID uint64, value int) (*VoteResult, error) {
	entry, err := s.entries.FindByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Entry not found")
		}
		return nil, err
	}
	if entry.IsDeleted {
		return nil, pkg.NotFound("Entry not found")
	}

	if entry.UserID == userID {
		return nil, pkg.Conflict("You cannot vote on your own entry")
	}

	vote, total, err := s.repo.Toggle(ctx, entryID, userID, value)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Vote: vote, Total: total}, nil
}

// State never mutates. userID == 0 means an anonymous read; the
// requester's own vote is then left null.
func (s *VoteService) State(entryID, userID uint64) (*VoteState, error) {
	total, count, err := s.repo.State(entryID)
	if err != nil {
		return nil, err
	}

	state := &VoteState{Total: total, Count: count}
	if userID != 0 {
		vote, err := s.repo.FindByEntryUser(entryID, userID)
		if err == nil {
			state.UserVote = &vote.Value
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return state, nil
}
