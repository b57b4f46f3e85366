package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/cpubars/internal/view"
)

// Text renders a View Tree as uncolored lines, one per core, for
// terminals that are not interactive (pipes, CI logs) and for `once`.
//
//	cpu0   7.10
//	cpu1  53.07
func Text(tree view.Node) string {
	cores := view.Cores(tree)
	var b strings.Builder
	for _, c := range cores {
		label := fmt.Sprintf("cpu%d", c.Index)
		// Plain text is not padded; right-align it so columns line up.
		value := c.Text
		if pad := view.PaddedWidth - len([]rune(value)); pad > 0 {
			value = strings.Repeat(" ", pad) + value
		}
		fmt.Fprintf(&b, "%-*s %s\n", coreLabelWidth-2, label, strings.ReplaceAll(value, string(view.PadRune), " "))
	}
	return b.String()
}

// TextWriter returns a FrameMsg consumer that writes each tree to w as
// Text followed by a blank line.
func TextWriter(w io.Writer) func(FrameMsg) error {
	return func(f FrameMsg) error {
		_, err := io.WriteString(w, Text(f.Tree)+"\n")
		return err
	}
}
