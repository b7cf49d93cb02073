package diagnostics

import (
	"fmt"
	"strings"

	"github.com/rewcli/rew/internal/filter"
)

// Explain renders pat as an indented tree of segments and filters, for the
// --explain flag.
func Explain(pat *filter.Pattern) string {
	var b strings.Builder
	for _, seg := range pat.Segments {
		writeSegment(&b, seg, 0)
	}
	return b.String()
}

func writeSegment(b *strings.Builder, seg filter.Segment, depth int) {
	indent := strings.Repeat("  ", depth)
	if seg.IsLiteral() {
		fmt.Fprintf(b, "%sliteral %q\n", indent, seg.Literal)
		return
	}
	fmt.Fprintf(b, "%sexpression\n", indent)
	for _, inv := range seg.Expr.Chain {
		name := inv.Name
		if name == "" {
			name = "{} (input)"
		}
		fmt.Fprintf(b, "%s  filter %s\n", indent, name)
		for _, arg := range inv.Args {
			if arg.SubPattern != nil {
				fmt.Fprintf(b, "%s    arg (pattern)\n", indent)
				for _, sub := range arg.SubPattern.Segments {
					writeSegment(b, sub, depth+3)
				}
				continue
			}
			fmt.Fprintf(b, "%s    arg %q\n", indent, arg.Text)
		}
	}
}
