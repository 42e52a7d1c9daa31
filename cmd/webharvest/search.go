package main

import (
	"fmt"

	"github.com/harvestlabs/webharvest"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Store.Search(deps.Ctx, c.Query, webharvest.SearchOptions{
		TopK:      c.TopK,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		fmt.Fprintf(deps.Stdout, "%d. %s (distance %.4f)\n", i+1, title, r.Distance)
		if date := webharvest.ResolveDate(r.PublishTime, r.ExtractionTime); date != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", date)
		}
		fmt.Fprintf(deps.Stdout, "   %s\n", r.URL)
		if r.Content != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", r.Content)
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
