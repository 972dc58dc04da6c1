package hive

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storyhive/internal/api"
	"storyhive/internal/cli/scheme/colours"
	"storyhive/internal/domain/story"
	"storyhive/internal/domain/user"
)

// Hive is the main application structure: one service client, the current
// session and the most recently fetched story list.
type Hive struct {
	api  *api.Client
	user *user.User
	list *story.List

	ctx    context.Context
	Cancel context.CancelFunc
}

func NewHive() *Hive {
	client, err := api.New(
		viper.GetString("api.base_url"),
		api.WithTimeout(viper.GetDuration("api.timeout")),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create api client")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Hive{
		api:    client,
		ctx:    ctx,
		Cancel: cancel,
	}
}

// RestoreSession tries to resume a session from stored credentials. A
// stale or missing token just leaves the hive anonymous.
func (h *Hive) RestoreSession() {
	token := viper.GetString("session.token")
	username := viper.GetString("session.username")
	if token == "" || username == "" {
		return
	}

	if u, ok := h.api.ResumeSession(h.ctx, token, username); ok {
		h.user = u
		colours.Success.Printf("Welcome back, %s!\n", u.Username)
	} else {
		colours.Warning.Println("Stored session expired, please log in again.")
	}
}

func (h *Hive) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("Welcome to StoryHive!")
	fmt.Println()
	colours.Info.Println("Available commands:")
	fmt.Println("  - storyhive stories    - Browse the story feed")
	fmt.Println("  - storyhive post       - Share a new story")
	fmt.Println("  - storyhive drop       - Delete one of your stories")
	fmt.Println("  - storyhive fav        - Toggle a favorite")
	fmt.Println("  - storyhive favorites  - Show your favorites")
	fmt.Println("  - storyhive mine       - Show stories you posted")
	fmt.Println("  - storyhive signup     - Create an account")
	fmt.Println("  - storyhive login      - Log in")
	fmt.Println("  - storyhive whoami     - Show the current session")
}

// ListStories fetches the feed and prints it, newest first.
func (h *Hive) ListStories(cmd *cobra.Command, args []string) {
	list, err := h.api.FetchStories(h.ctx)
	if err != nil {
		colours.Error.Printf("Could not fetch stories: %v\n", err)
		return
	}
	h.list = list

	fmt.Println()
	colours.Title.Println("Story feed")
	fmt.Println()
	h.printStories(list.Stories)
	colours.Success.Printf("%d stories in the feed\n", list.Len())
}

// PostStory prompts for a draft and submits it.
func (h *Hive) PostStory(cmd *cobra.Command, args []string) {
	if !h.requireUser() {
		return
	}
	list, ok := h.ensureStories()
	if !ok {
		return
	}

	draft := story.Draft{
		Title:  promptLine("Title: "),
		Author: promptLine("Author: "),
		URL:    promptLine("URL: "),
	}

	added, err := h.api.AddStory(h.ctx, h.user, list, draft)
	if err != nil {
		colours.Error.Printf("Could not post story: %v\n", err)
		return
	}
	colours.Success.Printf("Posted %q (id %s)\n", added.Title, added.StoryID)
}

// DropStory deletes the story with the given id.
func (h *Hive) DropStory(cmd *cobra.Command, args []string) {
	if !h.requireUser() {
		return
	}
	if len(args) == 0 {
		colours.Error.Println("Usage: storyhive drop <story-id>")
		return
	}
	list, ok := h.ensureStories()
	if !ok {
		return
	}

	if err := h.api.RemoveStory(h.ctx, h.user, list, args[0]); err != nil {
		colours.Error.Printf("Could not delete story: %v\n", err)
		return
	}
	colours.Success.Printf("Deleted story %s\n", args[0])
}

// ToggleFavorite favorites or unfavorites the story with the given id.
func (h *Hive) ToggleFavorite(cmd *cobra.Command, args []string) {
	if !h.requireUser() {
		return
	}
	if len(args) == 0 {
		colours.Error.Println("Usage: storyhive fav <story-id>")
		return
	}
	list, ok := h.ensureStories()
	if !ok {
		return
	}

	s, found := list.ByID(args[0])
	if !found {
		colours.Error.Printf("Story %q is not in the feed\n", args[0])
		return
	}

	favorited, err := h.api.ToggleFavorite(h.ctx, h.user, s)
	if err != nil {
		colours.Error.Printf("Could not update favorite: %v\n", err)
		return
	}
	if favorited {
		colours.Success.Printf("Favorited %q\n", s.Title)
	} else {
		colours.Success.Printf("Removed %q from favorites\n", s.Title)
	}
}

func (h *Hive) ShowFavorites(cmd *cobra.Command, args []string) {
	if !h.requireUser() {
		return
	}
	fmt.Println()
	colours.Title.Println("Your favorites")
	fmt.Println()
	if len(h.user.Favorites) == 0 {
		colours.Warning.Println("No favorites yet.")
		return
	}
	h.printStories(h.user.Favorites)
}

func (h *Hive) ShowOwnStories(cmd *cobra.Command, args []string) {
	if !h.requireUser() {
		return
	}
	fmt.Println()
	colours.Title.Println("Stories you posted")
	fmt.Println()
	if len(h.user.OwnStories) == 0 {
		colours.Warning.Println("You have not posted any stories yet.")
		return
	}
	h.printStories(h.user.OwnStories)
}

// Signup creates a new account and starts a session with it.
func (h *Hive) Signup(cmd *cobra.Command, args []string) {
	username := promptLine("Username: ")
	password := promptLine("Password: ")
	name := promptLine("Full name: ")

	u, err := h.api.Signup(h.ctx, username, password, name)
	if err != nil {
		colours.Error.Printf("Signup failed: %v\n", err)
		return
	}
	h.startSession(u)
	colours.Success.Printf("Account created. Welcome, %s!\n", u.Username)
}

// Login starts a session for an existing account.
func (h *Hive) Login(cmd *cobra.Command, args []string) {
	username := promptLine("Username: ")
	password := promptLine("Password: ")

	u, err := h.api.Login(h.ctx, username, password)
	if err != nil {
		colours.Error.Printf("Login failed: %v\n", err)
		return
	}
	h.startSession(u)
	colours.Success.Printf("Logged in as %s\n", u.Username)
}

func (h *Hive) WhoAmI(cmd *cobra.Command, args []string) {
	if h.user == nil {
		colours.Warning.Println("Not logged in.")
		return
	}
	colours.Info.Printf("Logged in as %s (%s), member since %s\n",
		h.user.Username, h.user.Name, h.user.CreatedAt)
	colours.Info.Printf("%d favorites, %d posted stories\n",
		len(h.user.Favorites), len(h.user.OwnStories))
}

func (h *Hive) startSession(u *user.User) {
	h.user = u
	viper.Set("session.token", u.LoginToken)
	viper.Set("session.username", u.Username)
	if err := viper.WriteConfig(); err != nil {
		// First run has no config file yet.
		if err := viper.SafeWriteConfig(); err != nil {
			logrus.WithError(err).Warn("could not persist session")
		}
	}
}

func (h *Hive) requireUser() bool {
	if h.user == nil {
		colours.Error.Println("You need to log in first: storyhive login")
		return false
	}
	return true
}

// ensureStories returns the cached feed, fetching it on first use.
func (h *Hive) ensureStories() (*story.List, bool) {
	if h.list != nil {
		return h.list, true
	}
	list, err := h.api.FetchStories(h.ctx)
	if err != nil {
		colours.Error.Printf("Could not fetch stories: %v\n", err)
		return nil, false
	}
	h.list = list
	return list, true
}

func (h *Hive) printStories(stories []story.Story) {
	for i, s := range stories {
		fmt.Printf("  %d. ", i+1)
		colours.Title.Printf("%s", s.Title)
		fmt.Printf(" by ")
		colours.Author.Printf("%s", s.Author)
		if host, err := s.HostName(); err == nil {
			colours.Host.Printf(" (%s)", host)
		}
		fmt.Printf("\n     posted by %s on %s\n", s.Username, s.CreatedAt)
		colours.Info.Printf("     ID: %s\n", s.StoryID)
		fmt.Println()
	}
}

func promptLine(label string) string {
	colours.Prompt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
