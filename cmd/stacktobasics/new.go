package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zinbo/stacktobasics/content"
	"github.com/zinbo/stacktobasics/scaffold"
	"github.com/zinbo/stacktobasics/tags"
)

var (
	newTags  []string
	newDate  string
	newCover string
	newDraft bool
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a new post",
	Long:  "Creates <contentDir>/<kebab-title>.md with front matter filled in from the flags.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringSliceVarP(&newTags, "tag", "t", nil, "Tag for the post (repeatable)")
	newCmd.Flags().StringVar(&newDate, "date", "", "Publication date as YYYY-MM-DD (default today)")
	newCmd.Flags().StringVar(&newCover, "cover", "", "Cover image path relative to the content dir")
	newCmd.Flags().BoolVar(&newDraft, "draft", true, "Mark the post as a draft")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(args, " "))
	slug := tags.KebabCase(title)
	if slug == "" {
		return fmt.Errorf("title %q does not produce a slug", title)
	}
	date := newDate
	if date == "" {
		date = time.Now().Format(content.DateLayout)
	}
	if _, err := time.Parse(content.DateLayout, date); err != nil {
		return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", date)
	}

	out := filepath.Join(app.Config.ContentDir, slug+".md")
	if _, err := os.Stat(out); err == nil {
		return fmt.Errorf("post %q already exists", out)
	}
	data, err := scaffold.Post(scaffold.PostData{
		Title: title,
		Date:  date,
		Slug:  slug,
		Tags:  newTags,
		Cover: newCover,
		Draft: newDraft,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  created %s\n", out)
	return nil
}
