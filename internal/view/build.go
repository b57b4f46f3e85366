package view

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/reading"
)

// Tags, attributes and roles used by the tree.
const (
	TagList  = "ol"
	TagItem  = "li"
	TagBar   = "div"
	AttrRole = "role"

	AttrValueNow    = "aria-valuenow"
	RoleProgressBar = "progressbar"
)

// Style selects how each core is presented.
type Style int

const (
	// StylePlain renders the value as fixed two-decimal text.
	StylePlain Style = iota
	// StyleDecorated wraps the value in a labeled progress indicator.
	StyleDecorated
)

// String returns the config name of the style.
func (s Style) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleDecorated:
		return "decorated"
	default:
		return "unknown"
	}
}

// ParseStyle maps a config value to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return StylePlain, nil
	case "decorated", "":
		return StyleDecorated, nil
	}
	return StylePlain, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown style '%s'", s),
		"Use 'plain' or 'decorated'.")
}

// Build maps a reading to its View Tree: an ordered list with one item per
// core, in core index order. It is pure: equal inputs give Equal trees.
func Build(v reading.Vector, style Style) Node {
	items := make([]Node, len(v))
	for i, x := range v {
		items[i] = buildItem(x, style)
	}
	return Node{Tag: TagList, Children: items}
}

func buildItem(x float64, style Style) Node {
	if style == StyleDecorated {
		return Node{Tag: TagItem, Children: []Node{ProgressBar(x)}}
	}
	return Node{Tag: TagItem, Text: FormatFixed(x)}
}

// ProgressBar is the decorated per-core indicator.
func ProgressBar(x float64) Node {
	return Node{
		Tag: TagBar,
		Attrs: []Attr{
			{Key: AttrRole, Val: RoleProgressBar},
			{Key: AttrValueNow, Val: FormatRounded(x)},
		},
		Text: FormatPadded(x),
	}
}
