package service

import (
	"fmt"
	"strings"
	"time"
)

// generateTitle creates an auto-generated title from participant names.
func generateTitle(names []string, now time.Time) string {
	if len(names) == 0 {
		return fmt.Sprintf("Bill - %s", now.Format("Jan 2, 2006"))
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
