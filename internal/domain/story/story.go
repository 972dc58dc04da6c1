package story

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrInvalidURL is returned by HostName when the story URL cannot be parsed.
var ErrInvalidURL = errors.New("invalid story url")

// Story is a single story record from the service. A Story is a value: the
// service assigns StoryID and no field changes after construction.
type Story struct {
	StoryID   string
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt string
	UpdatedAt string
}

// Record is the raw story payload a Story is built from. Timestamps stay as
// the opaque strings the service returns.
type Record struct {
	StoryID   string
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt string
	UpdatedAt string
}

// New builds a Story from a raw record. StoryID and Title are mandatory,
// the remaining fields may be absent in the source record.
func New(rec Record) (Story, error) {
	if rec.StoryID == "" {
		return Story{}, errors.New("story record missing storyId")
	}
	if rec.Title == "" {
		return Story{}, errors.New("story record missing title")
	}

	return Story{
		StoryID:   rec.StoryID,
		Title:     rec.Title,
		Author:    rec.Author,
		URL:       rec.URL,
		Username:  rec.Username,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

// HostName extracts the host component of the story URL. A URL that does
// not parse, or parses without a host, is reported as ErrInvalidURL.
func (s Story) HostName() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, s.URL)
	}
	return u.Host, nil
}

// Draft is the client-side input for creating a story. The service is the
// source of truth for format validation; the client only requires presence.
type Draft struct {
	Title  string
	Author string
	URL    string
}

// Validate reports the first missing draft field.
func (d Draft) Validate() error {
	switch {
	case d.Title == "":
		return errors.New("draft missing title")
	case d.Author == "":
		return errors.New("draft missing author")
	case d.URL == "":
		return errors.New("draft missing url")
	}
	return nil
}
