package datafile

import (
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05.000000"

var timestampReplacer = strings.NewReplacer(":", "_", "-", "_", " ", "-")

// Timestamp renders t with ':' and '-' replaced by '_' and the date/time
// separator space by '-', so the result embeds safely in dataset names and
// attribute strings.
//
// Example: 2026-08-23 14:05:09.000123 -> "2026_08_23-14_05_09.000123"
func Timestamp(t time.Time) string {
	return timestampReplacer.Replace(t.Format(timestampLayout))
}
