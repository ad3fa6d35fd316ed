package gate

import (
	"context"

	"github.com/IgorEulalio/nmap-preflight/pkg/logging"
	"github.com/IgorEulalio/nmap-preflight/pkg/privilege"
)

// RequireRoot runs fn only when checker says the process is privileged. The
// check is repeated on every call.
func RequireRoot[T any](checker privilege.Checker, fn Func[T]) Gated[T] {
	return func(ctx context.Context) (T, *Result, error) {
		if !checker.IsPrivileged() {
			var zero T
			l := logging.Logger()
			l.Debug().Msg("refusing call: process is not privileged")
			return zero, NotPrivileged(), nil
		}
		v, err := fn(ctx)
		return v, nil, err
	}
}
