package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// Observation hooks
// ---------------------------------------------------------------------------
// The engine has no ambient output: everything observable about a run goes
// through these injected interfaces, so multiple machines and test
// harnesses can capture output independently.

// Sink receives the values emitted by the write opcode, one call per
// value, in execution order.
type Sink interface {
	Write(v int64)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(v int64)

// Write implements Sink.
func (f SinkFunc) Write(v int64) {
	f(v)
}

// WriterSink returns a Sink that prints one value per line to w.
func WriterSink(w io.Writer) Sink {
	return SinkFunc(func(v int64) {
		fmt.Fprintf(w, "%d\n", v)
	})
}

type discardSink struct{}

func (discardSink) Write(int64) {}

// Tracer observes machine execution. The stack argument is a top-to-bottom
// snapshot; implementations must never mutate engine state.
type Tracer interface {
	// TraceStep is invoked after each executed instruction.
	TraceStep(pc int, in Instruction, stack []int64)

	// TraceSkip is invoked when an instruction's stack precondition is not
	// met and it is absorbed as a no-op.
	TraceSkip(pc int, in Instruction, stack []int64)

	// TraceDrop is invoked when a push against a full stack discards v.
	TraceDrop(pc int, in Instruction, v int64)
}

// NopTracer is the default tracer; it observes nothing.
type NopTracer struct{}

func (NopTracer) TraceStep(int, Instruction, []int64) {}
func (NopTracer) TraceSkip(int, Instruction, []int64) {}
func (NopTracer) TraceDrop(int, Instruction, int64)   {}

// ---------------------------------------------------------------------------
// LogTracer: structured trace via commonlog
// ---------------------------------------------------------------------------

// LogTracer reports execution through commonlog, tagging every message
// with a per-run id so interleaved runs stay distinguishable.
type LogTracer struct {
	log commonlog.Logger
	run string
}

// NewLogTracer creates a tracer logging under the "vm" scope with a fresh
// run id.
func NewLogTracer() *LogTracer {
	return &LogTracer{
		log: commonlog.GetLogger("vm"),
		run: uuid.New().String(),
	}
}

// RunID returns the id stamped on this tracer's messages.
func (t *LogTracer) RunID() string {
	return t.run
}

// TraceStep implements Tracer.
func (t *LogTracer) TraceStep(pc int, in Instruction, stack []int64) {
	t.log.Infof("run %s: %04d %s stack=%v", t.run, pc, in, stack)
}

// TraceSkip implements Tracer.
func (t *LogTracer) TraceSkip(pc int, in Instruction, stack []int64) {
	t.log.Infof("run %s: %04d stack too small to execute %s", t.run, pc, in)
}

// TraceDrop implements Tracer.
func (t *LogTracer) TraceDrop(pc int, in Instruction, v int64) {
	t.log.Infof("run %s: %04d stack full, could not push %d", t.run, pc, v)
}

// ---------------------------------------------------------------------------
// DisplayTracer: boxed stack rendering for terminals
// ---------------------------------------------------------------------------

// DisplayTracer prints the executed instruction and a boxed top-to-bottom
// rendering of the stack after every step.
type DisplayTracer struct {
	w io.Writer
}

// NewDisplayTracer creates a tracer writing to w.
func NewDisplayTracer(w io.Writer) *DisplayTracer {
	return &DisplayTracer{w: w}
}

// TraceStep implements Tracer.
func (t *DisplayTracer) TraceStep(pc int, in Instruction, stack []int64) {
	fmt.Fprintf(t.w, "Executing: %s\n", in)
	io.WriteString(t.w, RenderStack(stack))
}

// TraceSkip implements Tracer.
func (t *DisplayTracer) TraceSkip(pc int, in Instruction, stack []int64) {
	fmt.Fprintf(t.w, "Stack too small to execute %s\n", in)
}

// TraceDrop implements Tracer.
func (t *DisplayTracer) TraceDrop(pc int, in Instruction, v int64) {
	fmt.Fprintf(t.w, "The stack is full, could not push %d\n", v)
}

// RenderStack renders a top-to-bottom stack snapshot as a boxed column:
//
//	    TOP
//	----------------
//	    3
//	----------------
//	    BOTTOM
func RenderStack(stack []int64) string {
	const row = "----------------\n"
	var b strings.Builder
	b.WriteString("\n\tTOP\n")
	for _, v := range stack {
		b.WriteString(row)
		fmt.Fprintf(&b, "\t%d\n", v)
	}
	b.WriteString(row)
	b.WriteString("\tBOTTOM\n\n")
	return b.String()
}
