package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSubmissionID returns an opaque tracking id: MSG-<unix millis>-<9 random hex chars>.
func NewSubmissionID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("MSG-%d-%s", now.UnixMilli(), random[:9])
}
