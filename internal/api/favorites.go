package api

import (
	"context"
	"net/url"

	"storyhive/internal/domain/story"
	"storyhive/internal/domain/user"
)

// AddFavorite marks s as a favorite on the service, then appends it to
// u's favorites. The local set stays unique: favoriting a story twice
// still issues the remote call but leaves the set unchanged. No local
// mutation happens when the call fails.
func (c *Client) AddFavorite(ctx context.Context, u *user.User, s story.Story) error {
	if err := c.post(ctx, favoriteEndpoint(u.Username, s.StoryID), tokenRequest{Token: u.LoginToken}, nil); err != nil {
		return err
	}
	u.AddFavorite(s)
	return nil
}

// RemoveFavorite unmarks s on the service, then filters it out of u's
// favorites. Unfavoriting an absent story is a local no-op but the remote
// call is still issued.
func (c *Client) RemoveFavorite(ctx context.Context, u *user.User, s story.Story) error {
	if err := c.del(ctx, favoriteEndpoint(u.Username, s.StoryID), tokenRequest{Token: u.LoginToken}); err != nil {
		return err
	}
	u.RemoveFavorite(s.StoryID)
	return nil
}

// ToggleFavorite favorites s if u does not have it yet, unfavorites it
// otherwise. Reports whether the story ended up favorited.
func (c *Client) ToggleFavorite(ctx context.Context, u *user.User, s story.Story) (bool, error) {
	if u.IsFavorite(s.StoryID) {
		return false, c.RemoveFavorite(ctx, u, s)
	}
	return true, c.AddFavorite(ctx, u, s)
}

func favoriteEndpoint(username, storyID string) string {
	return "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
}
