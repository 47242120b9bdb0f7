package analytics

import "strings"

// corrections maps frequent misspellings seen in user questions to the
// vocabulary the rest of the pipeline understands. Applied in order, since
// some entries overlap.
var corrections = []struct {
	from, to string
}{
	{"kolity", "quality"},
	{"qualety", "quality"},
	{"qaulity", "quality"},
	{"qulaity", "quality"},
	{"kumposison", "composition"},
	{"komposition", "composition"},
	{"composision", "composition"},
	{"weev", "weave"},
	{"agnet", "agent"},
	{"cusomer", "customer"},
	{"custmer", "customer"},
	{"salse", "sales"},
	{"seles", "sales"},
	{"preium", "premium"},
	{"standrd", "standard"},
	{"econmy", "economy"},
}

// CorrectMisspellings rewrites known misspellings in the text. The result is
// lower-cased regardless of whether anything was replaced.
func CorrectMisspellings(text string) string {
	corrected := strings.ToLower(text)
	for _, c := range corrections {
		corrected = strings.ReplaceAll(corrected, c.from, c.to)
	}
	// "weav" only counts as a misspelling when it is not already "weave",
	// otherwise every correct occurrence would be mangled.
	var b strings.Builder
	for i := 0; i < len(corrected); {
		if strings.HasPrefix(corrected[i:], "weave") {
			b.WriteString("weave")
			i += len("weave")
			continue
		}
		if strings.HasPrefix(corrected[i:], "weav") {
			b.WriteString("weave")
			i += len("weav")
			continue
		}
		b.WriteByte(corrected[i])
		i++
	}
	return b.String()
}
