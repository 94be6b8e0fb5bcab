// AngelaMos | 2026
// timestamp.go

package core

import (
	"time"
)

const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
