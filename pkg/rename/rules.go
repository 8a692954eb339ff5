package rename

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// 📅 DatePosition controls where the date stamp token is inserted.
type DatePosition string

const (
	DatePrefix DatePosition = "prefix"
	DateSuffix DatePosition = "suffix"
)

// dateLayout is the stamp format, e.g. 20250131.
const dateLayout = "20060102"

// 🔄 ReplaceRule replaces every occurrence of From with To in the file name.
type ReplaceRule struct {
	From string
	To   string
}

// 🔢 NumberingRule appends a zero-padded sequence token to the base name.
type NumberingRule struct {
	Enabled bool
	Start   int // first sequence number, usually 1
	Width   int // zero-padding width, e.g. 3 -> 001
}

// 📅 DateStampRule inserts the plan date into the base name.
type DateStampRule struct {
	Enabled  bool
	Position DatePosition
}

// 🔧 RuleSet is the full, explicitly enumerated transformation configuration
// for one invocation. Every rule is independently optional; a zero RuleSet
// produces an identity plan. Immutable once handed to BuildPlan.
type RuleSet struct {
	Replace   *ReplaceRule
	Sanitize  bool
	Prefix    string
	Suffix    string
	Numbering NumberingRule
	DateStamp DateStampRule
}

// Empty reports whether no transformation is enabled.
func (r RuleSet) Empty() bool {
	return r.Replace == nil &&
		!r.Sanitize &&
		r.Prefix == "" &&
		r.Suffix == "" &&
		!r.Numbering.Enabled &&
		!r.DateStamp.Enabled
}

// 🔍 Validate checks the rule configuration. Malformed rules are rejected
// before any candidate is processed.
func (r RuleSet) Validate() error {
	if r.Replace != nil && r.Replace.From == "" {
		return &InvalidRuleError{Rule: "replace", Reason: "search text is empty"}
	}
	if r.Numbering.Enabled {
		if r.Numbering.Width <= 0 {
			return &InvalidRuleError{Rule: "numbering", Reason: fmt.Sprintf("width must be positive, got %d", r.Numbering.Width)}
		}
		if r.Numbering.Start < 0 {
			return &InvalidRuleError{Rule: "numbering", Reason: fmt.Sprintf("start must not be negative, got %d", r.Numbering.Start)}
		}
	}
	if r.DateStamp.Enabled {
		switch r.DateStamp.Position {
		case DatePrefix, DateSuffix:
		default:
			return &InvalidRuleError{Rule: "date_stamp", Reason: fmt.Sprintf("position must be %q or %q, got %q", DatePrefix, DateSuffix, r.DateStamp.Position)}
		}
	}
	return nil
}

var (
	// Characters outside word characters, whitespace and hyphens are dropped.
	unsafeChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
	underscores = regexp.MustCompile(`_+`)
)

// sanitizeBase normalizes a base name: unsafe characters are removed,
// whitespace runs become a single underscore, underscore runs collapse.
func sanitizeBase(base string) string {
	base = unsafeChars.ReplaceAllString(base, "")
	base = whitespace.ReplaceAllString(base, "_")
	base = underscores.ReplaceAllString(base, "_")
	return base
}

// proposeName computes the new file name for one candidate. The transform
// order is fixed so that combined rules stay predictable: replace, sanitize,
// prefix, suffix, numbering, date stamp. The extension is preserved unless
// the replace rule itself rewrites it; tokens never enter the extension.
// index is the zero-based position of the candidate in traversal order.
func proposeName(name string, rules RuleSet, index int, now time.Time) string {
	if rules.Replace != nil {
		name = strings.ReplaceAll(name, rules.Replace.From, rules.Replace.To)
	}

	ext := extOf(name)
	base := strings.TrimSuffix(name, ext)

	if rules.Sanitize {
		base = sanitizeBase(base)
	}
	if rules.Prefix != "" {
		base = rules.Prefix + base
	}
	if rules.Suffix != "" {
		base = base + rules.Suffix
	}
	if rules.Numbering.Enabled {
		base = fmt.Sprintf("%s_%0*d", base, rules.Numbering.Width, rules.Numbering.Start+index)
	}
	if rules.DateStamp.Enabled {
		stamp := now.Format(dateLayout)
		if rules.DateStamp.Position == DatePrefix {
			base = stamp + "_" + base
		} else {
			base = base + "_" + stamp
		}
	}

	return base + ext
}

// extOf returns the extension of name, treating dotfiles like ".env" as
// having no extension rather than being all extension.
func extOf(name string) string {
	ext := extIndex(name)
	if ext <= 0 {
		return ""
	}
	return name[ext:]
}

func extIndex(name string) int {
	for i := len(name) - 1; i >= 0 && name[i] != '/'; i-- {
		if name[i] == '.' {
			return i
		}
	}
	return -1
}
