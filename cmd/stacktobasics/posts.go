package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List indexed posts, drafts included",
	Long:  "Prints every post in the SQLite index, newest first, with its status and tags. Run index first to pick up new files.",
	Args:  cobra.NoArgs,
	RunE:  runPosts,
}

func init() {
	rootCmd.AddCommand(postsCmd)
}

func runPosts(cmd *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.Open(); err != nil {
		return err
	}

	posts, err := app.Store.ListAllPosts()
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSLUG\tSTATUS\tTAGS")
	for _, p := range posts {
		status := "published"
		if !p.Published {
			status = "draft"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Date, p.Slug, status, strings.Join(p.Tags, ", "))
	}
	return w.Flush()
}
