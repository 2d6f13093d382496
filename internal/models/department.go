package models

import "strings"

// Department is reference data keyed by a fixed enumerated code.
type Department struct {
	ID   string `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
}

// The institution's department codes. Signup and roster lookups validate
// against this set.
var DepartmentCodes = []string{"BIM", "BCA", "CSIT"}

// IsValidDepartment reports whether code names a known department,
// case-insensitively.
func IsValidDepartment(code string) bool {
	upper := strings.ToUpper(code)
	for _, known := range DepartmentCodes {
		if known == upper {
			return true
		}
	}
	return false
}
