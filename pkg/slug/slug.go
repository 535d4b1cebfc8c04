// Package slug derives public URL identifiers from article titles. Only the
// numeric suffix is authoritative: ParseID(Make(title, id)) == id for any title.
package slug

import (
	"strconv"
	"strings"
)

func Make(title string, articleID int64) string {
	joined := strings.Join(strings.Fields(strings.ToLower(title)), "-")

	var b strings.Builder
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String() + "-" + strconv.FormatInt(articleID, 10)
}

func ParseID(slug string) (int64, bool) {
	i := strings.LastIndex(slug, "-")
	if i == -1 {
		return 0, false
	}

	id, err := strconv.ParseInt(slug[i+1:], 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
