package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"saveward/pkg/cloud"
	"saveward/pkg/scan"
)

type cloudChangeEntry struct {
	Change scan.Change `json:"change"`
}

type cloudDocument struct {
	Cloud map[string]cloudChangeEntry `json:"cloud"`
}

// CloudChanges is the stateless sibling of the per-game reporters: it
// emits a flat list of path/change pairs. In API mode the JSON
// document goes to errOut; in text mode one line per change, ordered
// by (change, path), goes to out, or a single no-changes message to
// errOut when the list is empty.
func CloudChanges(out, errOut io.Writer, changes []cloud.Change, api bool, tr Translator) {
	if api {
		doc := cloudDocument{Cloud: make(map[string]cloudChangeEntry, len(changes))}
		for _, c := range changes {
			doc.Cloud[c.Path] = cloudChangeEntry{Change: c.Kind}
		}

		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			panic(err)
		}
		fmt.Fprint(errOut, buf.String())
		return
	}

	if len(changes) == 0 {
		fmt.Fprintln(errOut, tr.NoCloudChanges())
		return
	}

	ordered := make([]cloud.Change, len(changes))
	copy(ordered, changes)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Kind != ordered[j].Kind {
			return ordered[i].Kind < ordered[j].Kind
		}
		return ordered[i].Path < ordered[j].Path
	})

	for _, c := range ordered {
		fmt.Fprintf(out, "[%s] %s\n", c.Kind.Symbol(), c.Path)
	}
}
