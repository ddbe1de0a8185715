//go:build !windows

package seed

import (
	stderrors "errors"
	"fmt"
	"os"
	"syscall"

	"github.com/hpungsan/shelf/internal/errors"
)

// openNoFollowRead opens path for reading with O_NOFOLLOW, refusing a symlink
// as the final component. O_CLOEXEC prevents FD leaks across exec.
func openNoFollowRead(path string) (*os.File, error) {
	fd, err := syscall.Open(path, syscall.O_RDONLY|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, 0)
	if err != nil {
		if stderrors.Is(err, syscall.ELOOP) {
			return nil, errors.NewValidation("seed file must not be a symlink")
		}
		if stderrors.Is(err, syscall.ENOENT) {
			return nil, errors.NewValidation(fmt.Sprintf("seed file %s does not exist", path))
		}
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	return os.NewFile(uintptr(fd), path), nil
}
