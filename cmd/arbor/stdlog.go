package main

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"

	arborlog "github.com/arbortree/arbor/log"
)

// stdLog is a log.Log backed by the standard library's "log" package, for
// -v output. It enables every topic; arbor/log/logrus's Logrus is the
// adapter to reach for when a caller wants per-topic filtering or a
// structured sink instead.
type stdLog struct {
	logger  *log.Logger
	counter uint64
}

func newStdLog() *stdLog {
	return &stdLog{logger: log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)}
}

func (s *stdLog) Enabled(arborlog.Topics) bool { return true }

func (s *stdLog) Call(name string, args arborlog.M) string {
	cookie := fmt.Sprintf("%x", atomic.AddUint64(&s.counter, 1))
	s.logger.Printf("call %s[%s] %v", name, cookie, args)
	return cookie
}

func (s *stdLog) Return(name, cookie string, rets arborlog.M) {
	s.logger.Printf("return %s[%s] %v", name, cookie, rets)
}

func (s *stdLog) Log(_ arborlog.Topics, msg string) {
	s.logger.Print(msg)
}

func (s *stdLog) Logf(_ arborlog.Topics, msg string, args ...any) {
	s.logger.Printf(msg, args...)
}

var _ arborlog.Log = (*stdLog)(nil)
