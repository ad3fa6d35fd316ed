package privilege

// Checker reports whether the current process runs with root or
// administrator privileges.
type Checker interface {
	IsPrivileged() bool
}

type CheckerFunc func() bool

func (f CheckerFunc) IsPrivileged() bool {
	return f()
}

// System asks the operating system on every call.
var System Checker = CheckerFunc(isPrivileged)
