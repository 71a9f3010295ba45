package datarecording

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const execTableName = "exec_info"

// execInfo rows describe one property of the program execution.
type execInfo struct {
	Property string
	Value    string
}

// An ExecRecorder stores how and when the program ran alongside the
// simulation output, so that a result file can always be traced back to
// the command that produced it.
type ExecRecorder struct {
	tablename string
	recorder  DataRecorder
	entries   []execInfo
}

// NewExecRecorder creates an ExecRecorder writing through the given
// recorder.
func NewExecRecorder(recorder DataRecorder) *ExecRecorder {
	e := &ExecRecorder{
		tablename: execTableName,
		recorder:  recorder,
		entries:   []execInfo{},
	}

	e.recorder.CreateTable(e.tablename, execInfo{})

	return e
}

// Start captures the start time, the command line, and the working
// directory of the current execution.
func (e *ExecRecorder) Start() {
	startTime := time.Now().Format("2006-01-02 15:04:05.000000000")
	e.entries = append(e.entries, execInfo{"Start Time", startTime})

	cmd := strings.Join(os.Args, " ")
	e.entries = append(e.entries, execInfo{"Command", cmd})

	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}

	cwd := filepath.Dir(ex)
	e.entries = append(e.entries, execInfo{"Working Directory", cwd})
}

// End writes the captured properties along with the program end time.
func (e *ExecRecorder) End() {
	for _, entry := range e.entries {
		e.recorder.InsertData(e.tablename, entry)
	}

	endTime := time.Now().Format("2006-01-02 15:04:05.000000000")
	e.recorder.InsertData(e.tablename, execInfo{"End Time", endTime})

	e.entries = nil

	e.recorder.Flush()
}
