package interp

import (
	"bytes"
	"fmt"

	"mlab.dev/interp/pkg/diag"
)

// Flow is the control-flow signal spec §4.5 distinguishes from a
// catchable error: break/continue/return are threaded back up the
// call stack as the Reason of an *Exception returned from every
// exec/eval method, and a try/catch lets one pass through untouched
// rather than catching it (grounded on the teacher's eval.Flow: an
// error-shaped value carried by Exception.Reason, never Show()n to
// the user as an exception).
type Flow int

const (
	FlowReturn Flow = iota
	FlowBreak
	FlowContinue
)

var flowNames = [...]string{"return", "break", "continue"}

func (f Flow) Error() string {
	if int(f) < 0 || int(f) >= len(flowNames) {
		return "bad flow"
	}
	return flowNames[f]
}

// StackTrace is a linked list of call-site contexts, innermost first
// (grounded on eval.StackTrace).
type StackTrace struct {
	Head *diag.Context
	Next *StackTrace
}

// Push prepends a new frame, leaving st (the caller's trace) as the
// tail.
func (st *StackTrace) Push(ctx *diag.Context) *StackTrace {
	return &StackTrace{Head: ctx, Next: st}
}

// Exception is the catchable error spec §4.5/§7 describes: a
// user-visible error, the stack trace of the call chain that raised
// it, and the identifier a catch block sees (errAsStruct builds the
// struct that try/catch binds).
type Exception struct {
	Reason     error
	Trace      *StackTrace
	Identifier string // used as err.identifier; nothing in this package sets it, so it is "" by default
}

func (e *Exception) Error() string { return e.Reason.Error() }

// Show renders the exception and its traceback (grounded on
// eval.exception.Show).
func (e *Exception) Show(indent string) string {
	buf := new(bytes.Buffer)
	if shower, ok := e.Reason.(diag.Shower); ok {
		fmt.Fprintf(buf, "error: %s", shower.Show(indent))
	} else {
		fmt.Fprintf(buf, "error: %s", e.Reason.Error())
	}
	for tb := e.Trace; tb != nil; tb = tb.Next {
		buf.WriteString("\n" + indent + "  " + tb.Head.ShowCompact(indent))
	}
	return buf.String()
}

// NewException wraps reason with an empty trace; callers append
// frames as the Exception is returned back up through function calls.
func NewException(reason error) *Exception {
	return &Exception{Reason: reason}
}

// flowSignal builds the *Exception a break/continue/return statement
// returns in place of running the rest of its block; runLoopBody,
// callUserFunc and execTryCatch inspect Reason to tell a flow signal
// from a real error.
func flowSignal(fl Flow) *Exception {
	return &Exception{Reason: fl}
}
