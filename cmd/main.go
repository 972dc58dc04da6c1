package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storyhive/internal/cli/scheme/colours"
	"storyhive/internal/config"
	"storyhive/internal/story/hive"
)

func main() {

	config.SetDefaults()

	app := hive.NewHive()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Cancel()
		fmt.Println("\n" + colours.Warning.Sprint("Goodbye!"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "storyhive",
		Short: "A command-line client for the story-sharing service",
		Long: `StoryHive is a command-line client for a story-sharing service:
browse the feed, post and delete stories, and keep a set of favorites.`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}

	storiesCmd := &cobra.Command{
		Use:   "stories",
		Short: "Browse the story feed",
		Long:  "Fetch the current story feed from the service and list it, newest first",
		Run:   app.ListStories,
	}

	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Share a new story",
		Long:  "Submit a new story; the service assigns its id",
		Run:   app.PostStory,
	}

	dropCmd := &cobra.Command{
		Use:   "drop [story-id]",
		Short: "Delete one of your stories",
		Long:  "Delete a story by id; it disappears from the feed, your stories and favorites",
		Run:   app.DropStory,
	}

	favCmd := &cobra.Command{
		Use:   "fav [story-id]",
		Short: "Toggle a favorite",
		Long:  "Favorite the story if you have not favorited it yet, unfavorite it otherwise",
		Run:   app.ToggleFavorite,
	}

	favoritesCmd := &cobra.Command{
		Use:   "favorites",
		Short: "Show your favorites",
		Run:   app.ShowFavorites,
	}

	mineCmd := &cobra.Command{
		Use:   "mine",
		Short: "Show stories you posted",
		Run:   app.ShowOwnStories,
	}

	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Run:   app.Signup,
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in",
		Run:   app.Login,
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Run:   app.WhoAmI,
	}

	rootCmd.AddCommand(storiesCmd, postCmd, dropCmd, favCmd,
		favoritesCmd, mineCmd, signupCmd, loginCmd, whoamiCmd)

	// Try to resume a stored session before any command runs
	app.RestoreSession()

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("storyhive")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.storyhive")
	viper.AddConfigPath(".")

	viper.ReadInConfig()
}
