// Package gate wraps operations so they only run when the environment allows
// it. A refused call is not an error: it yields a Result record the caller
// can print or serialise as is.
package gate

import (
	"context"
	"encoding/json"
	"io"
	"os"
)

const (
	MsgNotPrivileged = "You must be root/administrator to continue!"
	MsgNotInstalled  = "Nmap has not been install on this system yet!"
)

// Result is the soft failure record returned instead of running a gated call.
type Result struct {
	Error bool   `json:"error"`
	Msg   string `json:"msg"`
}

func (r Result) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		return r.Msg
	}
	return string(b)
}

func NotPrivileged() *Result {
	return &Result{Error: true, Msg: MsgNotPrivileged}
}

func NotInstalled() *Result {
	return &Result{Error: true, Msg: MsgNotInstalled}
}

// Func is an operation that can be gated.
type Func[T any] func(ctx context.Context) (T, error)

// Gated is a gated Func. A non-nil *Result means fn was not run.
type Gated[T any] func(ctx context.Context) (T, *Result, error)

// Output receives the records printed by RequireInstalled.
var Output io.Writer = os.Stdout
