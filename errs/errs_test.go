package errs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arbortree/arbor/log"
)

func TestCodeString(t *testing.T) {
	assert.Equal(t, "EEXIST", EEXIST.String())
	assert.Equal(t, "EANCESTOR", ErrAncestor.String())
	assert.Equal(t, "Code(99)", Code(99).String())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "create", "/a/"))
}

func TestWrap(t *testing.T) {
	err := Wrap(ENOENT, "create", "/a/b/")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "/a/b/")
	assert.Contains(t, err.Error(), "create")
}

func TestFatalAbortsViaStub(t *testing.T) {
	orig := fatalAbort
	defer func() { fatalAbort = orig }()

	var captured error
	fatalAbort = func(err error) { captured = err }

	Fatal(log.NoLog{}, "nodesync.Lock", assert.AnError)
	assert.ErrorIs(t, captured, assert.AnError)
}
