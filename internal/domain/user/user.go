package user

import (
	"errors"
	"fmt"

	"storyhive/internal/domain/story"
)

// User is the authenticated actor. LoginToken is assigned once at
// construction (signup, login or session restore) and never changes.
// Favorites and OwnStories are independent sets, each unique by StoryID.
type User struct {
	Username   string
	Name       string
	CreatedAt  string
	Favorites  []story.Story
	OwnStories []story.Story

	LoginToken string
}

// Record is the raw user payload from the service. The service names the
// authored-stories field "stories"; locally they are OwnStories.
type Record struct {
	Username  string
	Name      string
	CreatedAt string
	Favorites []story.Record
	Stories   []story.Record
}

// New builds a User from a raw record and the session token, turning the
// raw favorite and authored records into Story values.
func New(rec Record, token string) (*User, error) {
	if rec.Username == "" {
		return nil, errors.New("user record missing username")
	}

	favorites, err := buildStories(rec.Favorites)
	if err != nil {
		return nil, fmt.Errorf("bad favorite record: %w", err)
	}
	own, err := buildStories(rec.Stories)
	if err != nil {
		return nil, fmt.Errorf("bad authored story record: %w", err)
	}

	return &User{
		Username:   rec.Username,
		Name:       rec.Name,
		CreatedAt:  rec.CreatedAt,
		Favorites:  favorites,
		OwnStories: own,
		LoginToken: token,
	}, nil
}

func buildStories(recs []story.Record) ([]story.Story, error) {
	stories := make([]story.Story, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		s, err := story.New(rec)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[s.StoryID]; ok {
			continue
		}
		seen[s.StoryID] = struct{}{}
		stories = append(stories, s)
	}
	return stories, nil
}

// IsFavorite reports whether the story with the given id is favorited.
func (u *User) IsFavorite(storyID string) bool {
	for _, s := range u.Favorites {
		if s.StoryID == storyID {
			return true
		}
	}
	return false
}

// AddFavorite appends s to the favorites unless already present, keeping
// the set unique by StoryID. Reports whether the set changed.
func (u *User) AddFavorite(s story.Story) bool {
	if u.IsFavorite(s.StoryID) {
		return false
	}
	u.Favorites = append(u.Favorites, s)
	return true
}

// RemoveFavorite filters out any favorite matching storyID and reports
// whether the set changed.
func (u *User) RemoveFavorite(storyID string) bool {
	kept, removed := filterOut(u.Favorites, storyID)
	u.Favorites = kept
	return removed
}

// PrependOwnStory puts s at the front of the authored stories, evicting
// any existing entry with the same StoryID.
func (u *User) PrependOwnStory(s story.Story) {
	kept, _ := filterOut(u.OwnStories, s.StoryID)
	u.OwnStories = append([]story.Story{s}, kept...)
}

// RemoveStory drops the story with the given id from both the favorites
// and the authored stories.
func (u *User) RemoveStory(storyID string) {
	u.Favorites, _ = filterOut(u.Favorites, storyID)
	u.OwnStories, _ = filterOut(u.OwnStories, storyID)
}

func filterOut(stories []story.Story, storyID string) ([]story.Story, bool) {
	kept := stories[:0]
	removed := false
	for _, s := range stories {
		if s.StoryID == storyID {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}
