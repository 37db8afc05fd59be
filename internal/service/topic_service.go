package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
)

const searchResultCap = 10

type TopicService struct {
	repo  *mysql.TopicRepository
	users *mysql.UserRepository
	bans  *BanPolicy
}

func NewTopicService(db *gorm.DB) *TopicService {
	return &TopicService{
		repo:  &mysql.TopicRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
		bans:  NewBanPolicy(db),
	}
}

func (s *TopicService) Create(userID uint64, title string) (*TopicView, error) {
	if err := s.bans.EnsureCanWrite(userID); err != nil {
		return nil, err
	}

	slug := pkg.GenerateSlug(title)
	exists, err := s.repo.SlugExists(slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkg.Conflict("Topic with this title already exists")
	}

	topic := &model.Topic{Title: title, Slug: slug, CreatedBy: userID}
	if err := s.repo.Create(topic); err != nil {
		return nil, err
	}

	views, err := s.enrich([]model.Topic{*topic})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *TopicService) List(page, limit int) ([]TopicView, Pagination, error) {
	page, limit, offset := normalizePage(page, limit, 20)

	topics, total, err := s.repo.List(offset, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	views, err := s.enrich(topics)
	if err != nil {
		return nil, Pagination{}, err
	}
	return views, paginate(page, limit, total), nil
}

func (s *TopicService) GetBySlug(slug string) (*TopicView, error) {
	topic, err := s.repo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NotFound("Topic not found")
		}
		return nil, err
	}

	views, err := s.enrich([]model.Topic{*topic})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Search matches a title substring; a blank query returns an empty set.
func (s *TopicService) Search(query string) ([]TopicView, error) {
	if strings.TrimSpace(query) == "" {
		return []TopicView{}, nil
	}
	topics, err := s.repo.SearchByTitle(query, searchResultCap)
	if err != nil {
		return nil, err
	}
	return s.enrich(topics)
}

// Delete cascades to the topic's entries and their votes. Gated at the
// route on moderator/admin role.
func (s *TopicService) Delete(actorID, topicID uint64) error {
	if _, err := s.repo.FindByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.NotFound("Topic not found")
		}
		return err
	}
	return s.repo.DeleteCascade(actorID, topicID)
}

func (s *TopicService) enrich(topics []model.Topic) ([]TopicView, error) {
	creatorIDs := make([]uint64, 0, len(topics))
	for _, t := range topics {
		creatorIDs = append(creatorIDs, t.CreatedBy)
	}
	creators, err := s.users.ListByIDs(creatorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		count, err := s.repo.EntryCount(t.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, TopicView{
			Topic:      t,
			Creator:    userRef(creators[t.CreatedBy]),
			EntryCount: count,
		})
	}
	return views, nil
}
