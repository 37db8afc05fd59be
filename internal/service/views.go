package service

import (
	"time"

	"sozluk/internal/model"
	"sozluk/internal/repository/mysql"
)

// UserRef is the slimmed author reference embedded in other payloads.
type UserRef struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type TopicRef struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type TopicView struct {
	model.Topic
	Creator    UserRef `json:"creator"`
	EntryCount int64   `json:"entryCount"`
}

type EntryView struct {
	model.Entry
	User      UserRef  `json:"user"`
	Topic     TopicRef `json:"topic"`
	VoteTotal int64    `json:"voteTotal"`
}

// UserProfile is the public user payload with content counts.
type UserProfile struct {
	ID          uint64     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsBanned    bool       `json:"isBanned"`
	BannedUntil *time.Time `json:"bannedUntil"`
	BanReason   *string    `json:"banReason"`
	CreatedAt   time.Time  `json:"createdAt"`
	TopicCount  int64      `json:"topicCount"`
	EntryCount  int64      `json:"entryCount"`
	VoteCount   int64      `json:"voteCount"`
}

// enrichEntries attaches author/topic references and computed vote
// totals to raw entry rows.
func enrichEntries(users *mysql.UserRepository, topics *mysql.TopicRepository, votes *mysql.VoteRepository, entries []model.Entry) ([]EntryView, error) {
	userIDs := make([]uint64, 0, len(entries))
	topicIDs := make([]uint64, 0, len(entries))
	entryIDs := make([]uint64, 0, len(entries))
	for _, e := range entries {
		userIDs = append(userIDs, e.UserID)
		topicIDs = append(topicIDs, e.TopicID)
		entryIDs = append(entryIDs, e.ID)
	}

	authors, err := users.ListByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	parents, err := topics.ListByIDs(topicIDs)
	if err != nil {
		return nil, err
	}
	sums, err := votes.SumsForEntries(entryIDs)
	if err != nil {
		return nil, err
	}

	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			Entry:     e,
			User:      userRef(authors[e.UserID]),
			Topic:     topicRef(parents[e.TopicID]),
			VoteTotal: sums[e.ID],
		})
	}
	return views, nil
}

func userRef(u model.User) UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}

func topicRef(t model.Topic) TopicRef {
	return TopicRef{ID: t.ID, Title: t.Title, Slug: t.Slug}
}
