package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Record represents a log record with all its metadata
type Record struct {
	Time       time.Time
	Level      Level
	Message    string
	Caller     CallerInfo
	LoggerName string
}

// CallerInfo contains information about the call site
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// recordPool is a pool of Record objects to reduce allocations
var recordPool = sync.Pool{
	New: func() interface{} {
		return &Record{}
	},
}

// GetRecord retrieves a Record from the pool, stamped with the current time
func GetRecord() *Record {
	r := recordPool.Get().(*Record)
	r.Time = time.Now()
	return r
}

// PutRecord returns a Record to the pool
func PutRecord(r *Record) {
	if r == nil {
		return
	}
	*r = Record{}
	recordPool.Put(r)
}

// GetCaller retrieves caller information. A skip of 0 identifies the
// function that called GetCaller.
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}

// CallerFromPC builds a CallerInfo from a program counter, as found in a
// slog.Record.
func CallerFromPC(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      f.File,
		ShortFile: filepath.Base(f.File),
		Line:      f.Line,
		Function:  f.Function,
		Defined:   true,
	}
}
