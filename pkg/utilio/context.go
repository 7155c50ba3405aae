package utilio

import (
	"context"
	"fmt"
	"io"
)

type ContextReader struct {
	ctx context.Context //nolint:containedctx
	r   io.Reader
}

func NewContextReader(ctx context.Context, r io.Reader) *ContextReader {
	return &ContextReader{ctx, r}
}

func (r *ContextReader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err() //nolint:wrapcheck
	default:
		return r.r.Read(p) //nolint:wrapcheck
	}
}

// ErrTooLarge is returned by ReadAllLimit when the input exceeds the limit.
type ErrTooLarge struct {
	Limit int64
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("input exceeds the maximum size of %d bytes", e.Limit)
}

// ReadAllLimit reads r until EOF, stopping early if ctx is cancelled or more
// than limit bytes are available.
func ReadAllLimit(ctx context.Context, r io.Reader, limit int64) ([]byte, error) {
	// read one byte past the limit so oversize input is detectable
	data, err := io.ReadAll(io.LimitReader(NewContextReader(ctx, r), limit+1))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if int64(len(data)) > limit {
		return nil, &ErrTooLarge{Limit: limit}
	}
	return data, nil
}
