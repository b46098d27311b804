package codegen

import (
	"fmt"
	"strings"

	"github.com/coolc/coolc/internal/semantic"
)

// DumpTables renders the class tag assignment, attribute layout, and
// dispatch table slot assignment computed for prog's class table —
// the side-channel report `--dump-tables` prints to stderr.
func DumpTables(result *semantic.Result) string {
	table := result.Table
	methods := result.Methods
	layouts := buildLayouts(table, methods)
	order := table.DefinedClasses()

	var b strings.Builder
	for _, name := range order {
		l := layouts[name]
		fmt.Fprintf(&b, "class %s: tag=%d range=[%d,%d] size=%d\n", name, l.tag, l.tag, l.lastTag, l.size())
		for _, attr := range l.attrs {
			fmt.Fprintf(&b, "  attr %s : %s @ %d\n", attr.ID, attr.Type, l.attrOffset[attr.ID])
		}
		for i, slot := range l.methods {
			fmt.Fprintf(&b, "  method %-20s slot %d (%d) owner %s\n", slot.name, i, i*wordSize, slot.owner)
		}
	}
	return b.String()
}
