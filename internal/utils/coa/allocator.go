// Package coa holds pure chart-of-accounts helpers.
package coa

import (
	"regexp"
	"strconv"
)

// NextChildCode allocates the next sub-account code under a parent code.
// Only direct numeric children count: codes matching ^parentCode(\d+)$.
// The next code is parentCode + (max suffix + 1), starting at 1 and with no
// zero padding. Gaps left by deleted children are never reused, so codes
// under one parent are unique and strictly increasing.
func NextChildCode(parentCode string, existingCodes []string) string {
	re := regexp.MustCompile("^" + regexp.QuoteMeta(parentCode) + `(\d+)$`)

	maxSuffix := 0
	for _, code := range existingCodes {
		m := re.FindStringSubmatch(code)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// Suffix too large for int; skip it rather than guess.
			continue
		}
		if n > maxSuffix {
			maxSuffix = n
		}
	}

	return parentCode + strconv.Itoa(maxSuffix+1)
}
