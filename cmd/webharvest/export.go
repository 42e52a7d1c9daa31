package main

import (
	"fmt"

	"github.com/harvestlabs/webharvest"
	"github.com/harvestlabs/webharvest/fs"
	"github.com/harvestlabs/webharvest/report"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	doc, err := deps.Archive.FindDocumentByURL(deps.Ctx, c.URL)
	if err != nil {
		if webharvest.ErrorCode(err) == webharvest.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s has not been extracted. Run 'webharvest extract %s' first.\n", c.URL, c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webharvest.ErrorMessage(err))
		}
		return err
	}

	md := report.ExportMarkdown(doc)

	if c.Out == "" {
		fmt.Fprint(deps.Stdout, md)
		return nil
	}
	if err := fs.WriteFileAtomic(c.Out, []byte(md), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", c.Out, err)
	}
	fmt.Fprintf(deps.Stdout, "Exported to %s\n", c.Out)
	return nil
}
