package service

import (
	"errors"

	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

type EntryService struct {
	repo   *mysql.EntryRepository
	topics *mysql.TopicRepository
	users  *mysql.UserRepository
	votes  *mysql.VoteRepository
	bans   *BanPolicy
}

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{
		repo:   &mysql.EntryRepository{DB: db},
		topics: &mysql.TopicRepository{DB: db},
		users:  &mysql.UserRepository{DB: db},
		votes:  &mysql.VoteRepository{DB: db},
		bans:   NewBanPolicy(db),
	}
}

func (s *EntryService) Create(userID, topicID uint64, content string) (*EntryView, error) {
	if err := s.bans.EnsureCanWrite(userID); err != nil {
		return nil, err
	}

	if _, err := s.topics.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Topic not found")
		}
		return nil, err
	}

	entry := &model.Entry{Content: content, TopicID: topicID, UserID: userID}
	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}

	views, err := s.enrich([]model.Entry{*entry})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List pages visible entries, optionally filtered to one topic
// (topicID == 0 means all).
func (s *EntryService) List(topicID uint64, page, limit int) ([]EntryView, Pagination, error) {
	page, limit, offset := normalizePage(page, limit, 20)

	entries, total, err := s.repo.List(topicID, offset, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	views, err := s.enrich(entries)
	if err != nil {
		return nil, Pagination{}, err
	}
	return views, paginate(page, limit, total), nil
}

func (s *EntryService) Get(id uint64) (*EntryView, error) {
	entry, err := s.visible(id)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich([]model.Entry{*entry})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Update is restricted to the entry's author.
func (s *EntryService) Update(id, userID uint64, content string) (*EntryView, error) {
	entry, err := s.visible(id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, pkg.Forbidden("You can only update your own entries")
	}

	if err := s.repo.UpdateContent(id, content); err != nil {
		return nil, err
	}
	entry.Content = content

	views, err := s.enrich([]model.Entry{*entry})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// SoftDelete hides the entry. The author may delete their own; a
// moderator or admin may delete any.
func (s *EntryService) SoftDelete(id, actorID uint64) error {
	entry, err := s.visible(id)
	if err != nil {
		return err
	}
	if entry.UserID != actorID {
		actor, err := s.users.FindByID(actorID)
		if err != nil {
			return err
		}
		if !actor.CanModerate() {
			return pkg.Forbidden("You can only delete your own entries")
		}
	}
	return s.repo.SoftDelete(id)
}

// ForceDelete permanently removes the entry and its votes. Gated at the
// route on moderator/admin role; soft-deleted entries are eligible.
func (s *EntryService) ForceDelete(actorID, entryID uint64) error {
	if _, err := s.repo.FindByID(entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("Entry not found")
		}
		return err
	}
	return s.repo.ForceDelete(actorID, entryID)
}

// visible loads an entry, treating soft-deleted rows as not found.
func (s *EntryService) visible(id uint64) (*model.Entry, error) {
	entry, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Entry not found")
		}
		return nil, err
	}
	if entry.IsDeleted {
		return nil, pkg.NotFound("Entry not found")
	}
	return entry, nil
}

func (s *EntryService) enrich(entries []model.Entry) ([]EntryView, error) {
	return enrichEntries(s.users, s.topics, s.votes, entries)
}
