//go:build !release

package assertion

import (
	"fmt"
	"os"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/logger"
)

// osExit is replaced in tests.
var osExit = os.Exit

// Enabled reports whether checks are compiled in
const Enabled = true

// Check terminates the process when cond is false, after logging through
// the default facade. msgAndArgs is an optional format string followed
// by its arguments.
func Check(cond bool, msgAndArgs ...interface{}) {
	if cond {
		return
	}
	fail(logger.Default(), core.GetCaller(1), msgAndArgs)
}

// Check terminates the process when cond is false, after logging through
// the Checker's facade.
func (c *Checker) Check(cond bool, msgAndArgs ...interface{}) {
	if cond {
		return
	}
	fail(c.facade, core.GetCaller(1), msgAndArgs)
}

func fail(f *logger.Facade, caller core.CallerInfo, msgAndArgs []interface{}) {
	text := fmt.Sprintf("Assertion failed: '%s' at %s:%d",
		conditionText(caller.File, caller.Line), caller.ShortFile, caller.Line)
	if msg := messageFromMsgAndArgs(msgAndArgs); msg != "" {
		text += " -- " + msg
	}

	f.LogAt(logger.CriticalLevel, caller, text)
	f.Flush()
	f.Reset()
	osExit(ExitCode)
}

func messageFromMsgAndArgs(msgAndArgs []interface{}) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprint(msgAndArgs[0])
	default:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
		return fmt.Sprint(msgAndArgs...)
	}
}
