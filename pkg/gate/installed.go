package gate

import (
	"context"
	"fmt"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
)

// Locator finds the binary and checks a path on the filesystem.
// *nmap.Resolver satisfies it.
type Locator interface {
	Path(ctx context.Context, candidate string) (string, error)
	Exists(path string) bool
}

type outcome[T any] struct {
	value T
	err   error
}

// RequireInstalled runs fn only when the binary can be located. Resolution
// and the existence check happen synchronously before fn is started; fn then
// runs on its own goroutine and the call waits for it or for ctx.
//
// Resolution errors, including nmap.ErrNotInstalled, are returned as is. The
// record is only produced for a resolved path that does not exist.
func RequireInstalled[T any](locator Locator, fn Func[T]) Gated[T] {
	return func(ctx context.Context) (T, *Result, error) {
		logger := logging.Logger()
		var zero T

		path, err := locator.Path(ctx, "")
		if err != nil {
			return zero, nil, err
		}
		if !locator.Exists(path) {
			res := NotInstalled()
			logger.Warn().Msgf("refusing call: %s", res.Msg)
			fmt.Fprintln(Output, res.String())
			return zero, res, nil
		}

		done := make(chan outcome[T], 1)
		go func() {
			v, err := fn(ctx)
			done <- outcome[T]{value: v, err: err}
		}()

		select {
		case o := <-done:
			return o.value, nil, o.err
		case <-ctx.Done():
			return zero, nil, ctx.Err()
		}
	}
}
