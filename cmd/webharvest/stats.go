package main

import (
	"fmt"
	"sort"

	"github.com/harvestlabs/webharvest"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Store.Statistics()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Documents:       %d\n", stats.TotalDocuments)
	fmt.Fprintf(deps.Stdout, "Embedding model: %s\n", stats.EmbeddingModel)
	fmt.Fprintf(deps.Stdout, "Index size:      %d bytes\n", stats.IndexSize)
	fmt.Fprintf(deps.Stdout, "Metadata size:   %d bytes\n", stats.MetadataSize)

	if len(stats.Channels) > 0 {
		fmt.Fprintln(deps.Stdout, "\nBy channel:")
		for _, key := range sortedKeys(stats.Channels) {
			fmt.Fprintf(deps.Stdout, "  %-20s %d\n", key, stats.Channels[key])
		}
	}
	if len(stats.Dates) > 0 {
		fmt.Fprintln(deps.Stdout, "\nBy date:")
		for _, key := range sortedKeys(stats.Dates) {
			fmt.Fprintf(deps.Stdout, "  %-20s %d\n", key, stats.Dates[key])
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
