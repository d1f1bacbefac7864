package bundle

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// FileSizeLimit is the largest single upload the web client accepts (2 GiB).
const FileSizeLimit int64 = 2 * 1024 * 1024 * 1024

// ErrUploadTooLarge is returned by CheckUploadSize.
var ErrUploadTooLarge = errors.New("upload exceeds size limit")

// CheckUploadSize rejects uploads larger than FileSizeLimit.
func CheckUploadSize(size int64) error {
	if size < 0 {
		return fmt.Errorf("invalid upload size %d", size)
	}
	if size > FileSizeLimit {
		return fmt.Errorf("%w: %s is larger than %s",
			ErrUploadTooLarge, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(FileSizeLimit)))
	}
	return nil
}
