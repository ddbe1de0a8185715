//go:build windows

package seed

import (
	"fmt"
	"os"

	"github.com/hpungsan/shelf/internal/errors"
)

// openNoFollowRead opens path for reading.
// O_NOFOLLOW is not available on Windows.
func openNoFollowRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewValidation(fmt.Sprintf("seed file %s does not exist", path))
		}
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	return f, nil
}
