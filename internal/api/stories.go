package api

import (
	"context"
	"fmt"
	"net/url"

	"storyhive/internal/domain/story"
	"storyhive/internal/domain/user"
)

// FetchStories fetches every story the service knows, in server order,
// newest first. No credential is required.
func (c *Client) FetchStories(ctx context.Context) (*story.List, error) {
	var resp storiesResponse
	if err := c.get(ctx, "/stories", nil, &resp); err != nil {
		return nil, err
	}

	stories := make([]story.Story, 0, len(resp.Stories))
	for _, rec := range resp.Stories {
		s, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("bad story record: %w", err)
		}
		stories = append(stories, s)
	}
	return story.NewList(stories), nil
}

// AddStory submits draft on behalf of u. On success the service-built
// story is prepended to both list and u's authored stories and returned.
// Nothing is mutated locally when the call fails.
func (c *Client) AddStory(ctx context.Context, u *user.User, list *story.List, draft story.Draft) (story.Story, error) {
	if err := draft.Validate(); err != nil {
		return story.Story{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	req := createStoryRequest{
		Token: u.LoginToken,
		Story: draftPayload{Author: draft.Author, Title: draft.Title, URL: draft.URL},
	}
	var resp storyResponse
	if err := c.post(ctx, "/stories", req, &resp); err != nil {
		return story.Story{}, err
	}

	added, err := resp.Story.toDomain()
	if err != nil {
		return story.Story{}, fmt.Errorf("bad story record: %w", err)
	}

	list.Prepend(added)
	u.PrependOwnStory(added)
	return added, nil
}

// RemoveStory deletes the story on the service, then evicts storyID from
// list and from u's favorites and authored stories. The local collections
// are left untouched when the call fails; removing an id the service
// accepted but the collections never held is a local no-op.
func (c *Client) RemoveStory(ctx context.Context, u *user.User, list *story.List, storyID string) error {
	endpoint := "/stories/" + url.PathEscape(storyID)
	if err := c.del(ctx, endpoint, tokenRequest{Token: u.LoginToken}); err != nil {
		return err
	}

	list.RemoveByID(storyID)
	u.RemoveStory(storyID)
	return nil
}
