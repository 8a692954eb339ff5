package rename

import (
	"fmt"
)

// 💥 DuplicateTargetError reports two distinct candidates mapping to the same
// proposed path. It is fatal to the whole plan: nothing is applied.
type DuplicateTargetError struct {
	Target string // the colliding proposed path
	First  string // original path of the first candidate claiming the target
	Second string // original path of the second candidate claiming the target
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("duplicate target %q: both %q and %q rename to it", e.Target, e.First, e.Second)
}

// 💥 InvalidRuleError reports a malformed rule configuration. It is surfaced
// before any candidate is processed.
type InvalidRuleError struct {
	Rule   string // which rule is malformed (replace, numbering, date_stamp)
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid %s rule: %s", e.Rule, e.Reason)
}
