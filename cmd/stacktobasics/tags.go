package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags in use and registered tags without posts",
	Long:  "Prints each canonical tag id found on published posts with its label and post count, then the registered tags no post uses yet.",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, _ []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.Open(); err != nil {
		return err
	}

	ids, err := app.Store.ListTags()
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	used := make(map[string]bool, len(ids))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tLABEL\tPOSTS\tLINK")
	for _, id := range ids {
		posts, err := app.Store.ListPosts(id)
		if err != nil {
			return fmt.Errorf("list posts for %s: %w", id, err)
		}
		b := app.Tags.Resolve(id)
		if d, ok := app.Tags.Lookup(id); ok {
			used[d.ID] = true
			b.Label = d.DisplayName()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", id, b.Label, len(posts), b.Href)
	}
	for _, d := range app.Tags.Descriptors() {
		if !used[d.ID] {
			fmt.Fprintf(w, "%s\t%s\t0\t(unused)\n", d.ID, d.DisplayName())
		}
	}
	return w.Flush()
}
