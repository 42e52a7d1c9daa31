package main

import (
	"encoding/json"
	"fmt"

	"github.com/harvestlabs/webharvest"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	defer deps.Fetcher.Close()

	doc, err := deps.Pipeline.Extract(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
		return err
	}

	tagDocument(doc, c.Channel, c.Module)
	analyzeDocument(deps, doc)

	if err := deps.Archive.CreateDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: archiving failed: %s\n", webharvest.ErrorMessage(err))
	}

	if !c.NoStore {
		if _, err := deps.Store.Save(deps.Ctx, []*webharvest.Document{doc}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
			return err
		}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

// tagDocument attaches the channel/module tag pair.
func tagDocument(doc *webharvest.Document, channel, module string) {
	doc.Channel = channel
	doc.ChannelName = channel
	doc.Module = module
	doc.ModuleName = module
}

// analyzeDocument attaches an LLM digest when an analyzer is configured.
// Analysis failures are reported but never fail the extraction.
func analyzeDocument(deps *Dependencies, doc *webharvest.Document) {
	if deps.Analyzer == nil {
		return
	}
	analysis, err := deps.Analyzer.Analyze(deps.Ctx, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: analysis failed: %s\n", webharvest.ErrorMessage(err))
		return
	}
	analysis.Attach(doc)
}
