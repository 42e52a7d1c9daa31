package main

import (
	"fmt"

	"github.com/harvestlabs/webharvest"
)

// Run executes the recent command.
func (c *RecentCmd) Run(deps *Dependencies) error {
	results, err := deps.Store.ByDateRange(c.StartDate, c.EndDate, c.TopK)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No documents between %s and %s.\n", c.StartDate, c.EndDate)
		return nil
	}

	for i, m := range results {
		title := m.Title
		if title == "" {
			title = m.URL
		}
		fmt.Fprintf(deps.Stdout, "%d. %s\n   %s\n   %s\n\n",
			i+1, title, webharvest.ResolveDate(m.PublishTime, m.ExtractionTime), m.URL)
	}
	return nil
}
