package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// CategorySlug lowercases name and collapses every non-alphanumeric run
// into a single hyphen. Leading and trailing hyphens are kept.
func CategorySlug(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
}

// ProductSlug is CategorySlug with edge hyphens trimmed and a millisecond
// timestamp appended so repeated names still get distinct slugs.
func ProductSlug(name string, now time.Time) string {
	base := strings.Trim(CategorySlug(name), "-")
	return base + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}
