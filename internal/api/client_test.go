package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"storyhive/internal/domain/story"
	"storyhive/internal/domain/user"
)

var ctx = context.Background()

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}

func serviceReject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := errorBody{}
	body.Error.Message = message
	json.NewEncoder(w).Encode(body)
}

// testUser builds a logged-in user with one favorite (f1) and two authored
// stories (o1, o2).
func testUser(t *testing.T) *user.User {
	t.Helper()
	u, err := user.New(user.Record{
		Username:  "hueter",
		Name:      "Matt",
		CreatedAt: "2020-01-01",
		Favorites: []story.Record{{StoryID: "f1", Title: "Fav one"}},
		Stories: []story.Record{
			{StoryID: "o1", Title: "Own one"},
			{StoryID: "o2", Title: "Own two"},
		},
	}, "tok-123")
	require.NoError(t, err)
	return u
}

func testList() *story.List {
	return story.NewList([]story.Story{
		{StoryID: "s1", Title: "First"},
		{StoryID: "s2", Title: "Second"},
	})
}

func TestNew_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.Error(t, err)
}

func TestFetchStories(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/stories", r.URL.Path)
		writeJSON(t, w, storiesResponse{Stories: []storyRecord{{
			StoryID:   "s1",
			Title:     "T",
			Author:    "A",
			URL:       "http://x.com",
			Username:  "u",
			CreatedAt: "2020-01-01",
		}}})
	}))

	list, err := c.FetchStories(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())

	host, err := list.Stories[0].HostName()
	require.NoError(t, err)
	require.Equal(t, "x.com", host)
}

func TestFetchStories_ServiceError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceReject(w, http.StatusInternalServerError, "boom")
	}))

	_, err := c.FetchStories(ctx)
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusInternalServerError, svcErr.Status)
}

func TestAddStory_PrependsBothCollections(t *testing.T) {
	t.Parallel()

	newID := uuid.NewString()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/stories", r.URL.Path)

		var req createStoryRequest
		decodeBody(t, r, &req)
		require.Equal(t, "tok-123", req.Token)
		require.Equal(t, "The Third", req.Story.Title)
		require.Equal(t, "Matt", req.Story.Author)
		require.Equal(t, "http://x.com/a", req.Story.URL)

		writeJSON(t, w, storyResponse{Story: storyRecord{
			StoryID:  newID,
			Title:    req.Story.Title,
			Author:   req.Story.Author,
			URL:      req.Story.URL,
			Username: "hueter",
		}})
	}))

	u := testUser(t)
	list := testList()

	added, err := c.AddStory(ctx, u, list, story.Draft{
		Title:  "The Third",
		Author: "Matt",
		URL:    "http://x.com/a",
	})
	require.NoError(t, err)
	require.Equal(t, newID, added.StoryID)

	// new story sits at position 0 of both collections
	require.Equal(t, 3, list.Len())
	require.Equal(t, newID, list.Stories[0].StoryID)
	require.Len(t, u.OwnStories, 3)
	require.Equal(t, newID, u.OwnStories[0].StoryID)
}

func TestAddStory_MissingDraftField(t *testing.T) {
	t.Parallel()

	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	u := testUser(t)
	list := testList()

	_, err := c.AddStory(ctx, u, list, story.Draft{Title: "no url", Author: "A"})
	require.ErrorIs(t, err, ErrValidation)
	require.Zero(t, calls)
	require.Equal(t, 2, list.Len())
	require.Len(t, u.OwnStories, 2)
}

func TestAddStory_AuthRejected_NoLocalMutation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceReject(w, http.StatusUnauthorized, "token expired")
	}))

	u := testUser(t)
	list := testList()

	_, err := c.AddStory(ctx, u, list, story.Draft{Title: "T", Author: "A", URL: "http://x.com"})
	require.ErrorIs(t, err, ErrAuth)
	require.Equal(t, 2, list.Len())
	require.Len(t, u.OwnStories, 2)
}

func TestRemoveStory_RemovesFromAllCollections(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/stories/o1", r.URL.Path)

		var req tokenRequest
		decodeBody(t, r, &req)
		require.Equal(t, "tok-123", req.Token)
		w.WriteHeader(http.StatusOK)
	}))

	u := testUser(t)
	// o1 present in the feed, the authored stories and the favorites
	list := story.NewList([]story.Story{
		{StoryID: "o1", Title: "Own one"},
		{StoryID: "s2", Title: "Second"},
	})
	u.AddFavorite(u.OwnStories[0])

	require.NoError(t, c.RemoveStory(ctx, u, list, "o1"))

	require.False(t, list.ContainsID("o1"))
	require.False(t, u.IsFavorite("o1"))
	for _, s := range u.OwnStories {
		require.NotEqual(t, "o1", s.StoryID)
	}
}

func TestRemoveStory_RemoteFailure_KeepsLocalState(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceReject(w, http.StatusUnauthorized, "token expired")
	}))

	u := testUser(t)
	list := story.NewList([]story.Story{{StoryID: "o1", Title: "Own one"}})

	err := c.RemoveStory(ctx, u, list, "o1")
	require.ErrorIs(t, err, ErrAuth)
	require.True(t, list.ContainsID("o1"))
	require.Len(t, u.OwnStories, 2)
}

func TestRemoveStory_AbsentIDStillIssuesCall(t *testing.T) {
	t.Parallel()

	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	u := testUser(t)
	list := testList()

	require.NoError(t, c.RemoveStory(ctx, u, list, "never-seen"))
	require.Equal(t, 1, calls)
	require.Equal(t, 2, list.Len())
}

func TestSignup(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/signup", r.URL.Path)

		var req signupRequest
		decodeBody(t, r, &req)
		require.Equal(t, "newbie", req.User.Username)
		require.Equal(t, "hunter2", req.User.Password)
		require.Equal(t, "New Person", req.User.Name)

		writeJSON(t, w, authResponse{
			User: userRecord{
				Username:  "newbie",
				Name:      "New Person",
				CreatedAt: "2020-01-01",
				Stories:   []storyRecord{},
				Favorites: []storyRecord{},
			},
			Token: "fresh-token",
		})
	}))

	u, err := c.Signup(ctx, "newbie", "hunter2", "New Person")
	require.NoError(t, err)
	require.Equal(t, "fresh-token", u.LoginToken)
	require.Empty(t, u.Favorites)
	require.Empty(t, u.OwnStories)
}

func TestSignup_UsernameTaken(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceReject(w, http.StatusConflict, "username taken")
	}))

	_, err := c.Signup(ctx, "taken", "pw", "Some One")
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var req loginRequest
		decodeBody(t, r, &req)
		require.Equal(t, "hueter", req.User.Username)
		require.Equal(t, "hunter2", req.User.Password)

		writeJSON(t, w, authResponse{
			User: userRecord{
				Username:  "hueter",
				Name:      "Matt",
				CreatedAt: "2020-01-01",
				Favorites: []storyRecord{{StoryID: "f1", Title: "Fav one"}},
				Stories:   []storyRecord{{StoryID: "o1", Title: "Own one"}},
			},
			Token: "issued-token",
		})
	}))

	u, err := c.Login(ctx, "hueter", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "issued-token", u.LoginToken)

	// raw records became Story values
	require.Len(t, u.Favorites, 1)
	require.Equal(t, "Fav one", u.Favorites[0].Title)
	require.Len(t, u.OwnStories, 1)
	require.Equal(t, "Own one", u.OwnStories[0].Title)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceReject(w, http.StatusUnauthorized, "invalid credentials")
	}))

	_, err := c.Login(ctx, "hueter", "wrong")
	require.ErrorIs(t, err, ErrAuth)
}

func TestResumeSession(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/users/hueter", r.URL.Path)
		// token travels as a query parameter on this call only
		require.Equal(t, "tok-123", r.URL.Query().Get("token"))

		writeJSON(t, w, userResponse{User: userRecord{
			Username:  "hueter",
			Name:      "Matt",
			CreatedAt: "2020-01-01",
		}})
	}))

	u, ok := c.ResumeSession(ctx, "tok-123", "hueter")
	require.True(t, ok)
	require.Equal(t, "hueter", u.Username)
	require.Equal(t, "tok-123", u.LoginToken)
}

func TestResumeSession_InvalidToken_ReportsNoSession(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceReject(w, http.StatusUnauthorized, "token expired")
	}))

	u, ok := c.ResumeSession(ctx, "stale", "hueter")
	require.False(t, ok)
	require.Nil(t, u)
}

func TestResumeSession_NetworkFailure_ReportsNoSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	u, ok := c.ResumeSession(ctx, "tok", "hueter")
	require.False(t, ok)
	require.Nil(t, u)
}

func TestFavorite_RoundTripIsNetNoOp(t *testing.T) {
	t.Parallel()

	var methods []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/hueter/favorites/s1", r.URL.Path)

		var req tokenRequest
		decodeBody(t, r, &req)
		require.Equal(t, "tok-123", req.Token)

		methods = append(methods, r.Method)
		w.WriteHeader(http.StatusOK)
	}))

	u := testUser(t)
	before := len(u.Favorites)
	s := story.Story{StoryID: "s1", Title: "First"}

	require.NoError(t, c.AddFavorite(ctx, u, s))
	require.True(t, u.IsFavorite("s1"))

	require.NoError(t, c.RemoveFavorite(ctx, u, s))
	require.False(t, u.IsFavorite("s1"))
	require.Len(t, u.Favorites, before)

	require.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestAddFavorite_DuplicateStillIssuesCall(t *testing.T) {
	t.Parallel()

	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	u := testUser(t)
	require.NoError(t, c.AddFavorite(ctx, u, u.Favorites[0]))

	require.Equal(t, 1, calls)
	require.Len(t, u.Favorites, 1)
}

func TestAddFavorite_RemoteFailure_KeepsLocalState(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serviceReject(w, http.StatusServiceUnavailable, "down for maintenance")
	}))

	u := testUser(t)
	err := c.AddFavorite(ctx, u, story.Story{StoryID: "s9", Title: "Nine"})
	require.Error(t, err)
	require.False(t, u.IsFavorite("s9"))
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	u := testUser(t)
	s := story.Story{StoryID: "s1", Title: "First"}

	favorited, err := c.ToggleFavorite(ctx, u, s)
	require.NoError(t, err)
	require.True(t, favorited)
	require.True(t, u.IsFavorite("s1"))

	favorited, err = c.ToggleFavorite(ctx, u, s)
	require.NoError(t, err)
	require.False(t, favorited)
	require.False(t, u.IsFavorite("s1"))
}

func TestNetworkErrorClassification(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.FetchStories(ctx)
	require.Error(t, err)
	require.True(t, IsNetworkError(err))
}

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusBadRequest, ErrValidation},
		{http.StatusConflict, ErrValidation},
		{http.StatusNotFound, ErrNotFound},
	}

	for _, tc := range cases {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			serviceReject(w, tc.status, "nope")
		}))

		_, err := c.FetchStories(ctx)
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		require.False(t, IsNetworkError(err))
	}
}
