// Package errs defines the POSIX-flavored error codes every arbortree
// operation returns, plus the fatal-abort path for synchronization-primitive
// failures, which are treated as unrecoverable.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/arbortree/arbor/log"
)

// Code is a POSIX-style error code. Zero is success.
type Code int

const (
	// OK indicates success.
	OK Code = 0

	// EINVAL: the path string is not well-formed.
	EINVAL Code = Code(unix.EINVAL)

	// EEXIST: create/move target already exists, or names the root.
	EEXIST Code = Code(unix.EEXIST)

	// ENOENT: a path component, or the move source, does not exist.
	ENOENT Code = Code(unix.ENOENT)

	// ENOTEMPTY: remove was attempted on a non-empty folder.
	ENOTEMPTY Code = Code(unix.ENOTEMPTY)

	// EBUSY: the operation may not target the root (remove, move-source).
	EBUSY Code = Code(unix.EBUSY)

	// ErrAncestor: move's source is a strict prefix path of its target (an
	// ancestor folder cannot be moved into its own descendant).
	ErrAncestor Code = -1
)

var names = map[Code]string{
	OK:          "OK",
	EINVAL:      "EINVAL",
	EEXIST:      "EEXIST",
	ENOENT:      "ENOENT",
	ENOTEMPTY:   "ENOTEMPTY",
	EBUSY:       "EBUSY",
	ErrAncestor: "EANCESTOR",
}

// String renders the code's symbolic name.
func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error lets Code satisfy the error interface. arbortree operations return
// a Code directly, with OK for success.
func (c Code) Error() string {
	return c.String()
}

// Wrap annotates err with the operation name and path, for logging.
func Wrap(err error, op, path string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s %q", op, path)
}

// Fatal reports an unrecoverable synchronization-primitive failure and
// aborts the process. Every node assumes its locking primitives work; a
// failure here means that assumption was violated and there is no sound
// way to keep running.
func Fatal(l log.Log, op string, err error) {
	l.Logf(log.TopicError, "fatal: %s: %v", op, err)
	fatalAbort(errors.Wrapf(err, "arbor: fatal error in %s", op))
}

// fatalAbort is a var so tests can stub out the process-termination
// collaborator instead of exercising a real abort.
var fatalAbort = func(err error) {
	panic(err)
}
