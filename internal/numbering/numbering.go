// Package numbering allocates entity identifiers and human-facing task numbers.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// TaskNumberPrefix is the prefix for newly issued task numbers.
const TaskNumberPrefix = "ST"

// taskNumberPattern tolerates the legacy TF prefix still present in older data.
var taskNumberPattern = regexp.MustCompile(`^(?:TF|ST)-(\d+)$`)

// NewID returns an opaque unique identifier. Safe under rapid successive
// calls within the same time-resolution unit.
func NewID() string {
	return uuid.New().String()
}

// NextTaskNumber returns the next task number given every number currently
// stored. The maximum numeric suffix is recomputed from the full set on each
// call. Max-based, not gap-filling: given ST-001 and ST-003 the next number is
// ST-004; numbers below the surviving maximum are never reissued.
func NextTaskNumber(existing []string) string {
	max := 0
	for _, no := range existing {
		m := taskNumberPattern.FindStringSubmatch(no)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", TaskNumberPrefix, max+1)
}
