package refs

import (
	"github.com/huangsam/specboard/schema"
	"github.com/pmezard/go-difflib/difflib"
)

// PaneDiff returns a unified diff between the old and new panes of res.
// Identical panes give an empty string.
func PaneDiff(res schema.Resolution) (string, error) {
	if res.OldText == res.NewText {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(res.OldText),
		B:        difflib.SplitLines(res.NewText),
		FromFile: "old/" + res.Name,
		ToFile:   "new/" + res.Name,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(ud)
}
