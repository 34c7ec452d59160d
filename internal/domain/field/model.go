package field

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrNameTaken = errors.New("field name already used in tournament")
	ErrInUse     = errors.New("field has scheduled matches")
)

// Field is a pitch a tournament schedules matches on.
type Field struct {
	ID           string
	TournamentID string
	OwnerID      string
	Name         string
	CreatedAt    time.Time
}

func (f Field) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("field id is required")
	}
	if f.TournamentID == "" {
		return fmt.Errorf("field tournament id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("field name is required")
	}
	if len([]rune(f.Name)) > 100 {
		return fmt.Errorf("field name must be at most 100 characters")
	}

	return nil
}
