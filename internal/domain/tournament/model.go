package tournament

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
)

var ErrSlugTaken = errors.New("tournament slug already taken")

// Tournament groups teams, fields and matches under one owner.
type Tournament struct {
	ID         string
	OwnerID    string
	Name       string
	Slug       string
	IsFinished bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.OwnerID == "" {
		return fmt.Errorf("tournament owner is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if len([]rune(t.Name)) > 200 {
		return fmt.Errorf("tournament name must be at most 200 characters")
	}
	if t.Slug == "" || Slugify(t.Slug) != t.Slug {
		return fmt.Errorf("tournament slug %q is invalid", t.Slug)
	}

	return nil
}

func (t Tournament) OwnedBy(userID string) bool {
	return userID != "" && t.OwnerID == userID
}

// Slugify lowercases name and collapses every run of non-alphanumeric
// characters into a single dash.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return b.String()
}

// CandidateSlug returns the slug to try on the given attempt, starting at 1.
func CandidateSlug(base string, attempt int) string {
	if base == "" {
		base = "tournament"
	}
	if attempt <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt)
}

// FirstActive returns the first unfinished tournament in the given order.
func FirstActive(items []Tournament) (Tournament, bool) {
	for _, item := range items {
		if !item.IsFinished {
			return item, true
		}
	}
	return Tournament{}, false
}
