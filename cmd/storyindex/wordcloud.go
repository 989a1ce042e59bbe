package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/storyindex"
	"github.com/fwojciec/storyindex/fs"
	"github.com/mattn/go-runewidth"
)

// wordcloudPreview is the number of words printed after a rebuild.
const wordcloudPreview = 20

// Run executes the wordcloud command.
func (c *WordcloudCmd) Run(deps *Dependencies) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	entries, n, err := rebuildWordCloud(deps.Ctx, fs.NewArtifactStore(cfg.OutputDir), cfg.OutputDir, cfg.Artifacts)
	if storyindex.ErrorCode(err) == storyindex.ENOTFOUND {
		return err
	} else if err != nil {
		return fmt.Errorf("failed to write word cloud: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Top %d words from %d stories:\n", min(wordcloudPreview, len(entries)), n)
	for i, e := range entries {
		if i == wordcloudPreview {
			break
		}
		fmt.Fprintf(deps.Stdout, "%3d. %s %d\n", i+1, runewidth.FillRight(e.Word, 20), e.Count)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d entries to %s\n", len(entries), filepath.Join(cfg.OutputDir, cfg.Artifacts.WordCloud))
	return nil
}
