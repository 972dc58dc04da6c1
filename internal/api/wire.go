package api

import (
	"storyhive/internal/domain/story"
	"storyhive/internal/domain/user"
)

// Wire records, field names as the service sends them.

type storyRecord struct {
	StoryID   string `json:"storyId"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// userRecord carries the user's authored stories under the wire name
// "stories"; locally they become OwnStories.
type userRecord struct {
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	CreatedAt string        `json:"createdAt"`
	Favorites []storyRecord `json:"favorites"`
	Stories   []storyRecord `json:"stories"`
}

type storiesResponse struct {
	Stories []storyRecord `json:"stories"`
}

type storyResponse struct {
	Story storyRecord `json:"story"`
}

type authResponse struct {
	User  userRecord `json:"user"`
	Token string     `json:"token"`
}

type userResponse struct {
	User userRecord `json:"user"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type createStoryRequest struct {
	Token string       `json:"token"`
	Story draftPayload `json:"story"`
}

type draftPayload struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	URL    string `json:"url"`
}

type signupRequest struct {
	User signupPayload `json:"user"`
}

type signupPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	User loginPayload `json:"user"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type errorBody struct {
	Error struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r storyRecord) toDomain() (story.Story, error) {
	return story.New(story.Record{
		StoryID:   r.StoryID,
		Title:     r.Title,
		Author:    r.Author,
		URL:       r.URL,
		Username:  r.Username,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	})
}

func (r userRecord) toDomain(token string) (*user.User, error) {
	return user.New(user.Record{
		Username:  r.Username,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		Favorites: storyRecords(r.Favorites),
		Stories:   storyRecords(r.Stories),
	}, token)
}

func storyRecords(recs []storyRecord) []story.Record {
	out := make([]story.Record, len(recs))
	for i, r := range recs {
		out[i] = story.Record{
			StoryID:   r.StoryID,
			Title:     r.Title,
			Author:    r.Author,
			URL:       r.URL,
			Username:  r.Username,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return out
}
