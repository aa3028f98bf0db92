package vm

// ---------------------------------------------------------------------------
// Machine: the fetch-decode-execute engine
// ---------------------------------------------------------------------------

// Truth values pushed by the comparison opcodes and tested by br_false.
// A condition of exactly 1 is true; any other value is false.
const (
	TrueValue  int64 = 1
	FalseValue int64 = 0
)

// Machine executes a fixed instruction sequence against a bounded value
// stack. The program is borrowed for the duration of a run and never
// mutated; the stack is exclusively owned. Execution is synchronous and
// single-threaded: Run returns only when the program counter leaves the
// valid index range. There is no halt instruction and no cancellation; a
// program that branches in a cycle runs forever.
type Machine struct {
	stack   *ValueStack
	program []Instruction
	pc      int

	sink   Sink
	tracer Tracer
}

// NewMachine creates a machine over program with an empty stack of the
// given capacity. Writes are discarded and tracing is off until a sink or
// tracer is injected.
func NewMachine(capacity int, program []Instruction) *Machine {
	return NewMachineWithStack(NewValueStack(capacity), program)
}

// NewMachineWithStack creates a machine over program using a caller-built
// stack, typically one from NewSeededValueStack.
func NewMachineWithStack(stack *ValueStack, program []Instruction) *Machine {
	return &Machine{
		stack:   stack,
		program: program,
		sink:    discardSink{},
		tracer:  NopTracer{},
	}
}

// SetSink injects the destination for values emitted by write.
func (m *Machine) SetSink(s Sink) {
	if s == nil {
		s = discardSink{}
	}
	m.sink = s
}

// SetTracer injects the observation hook invoked after every step.
func (m *Machine) SetTracer(t Tracer) {
	if t == nil {
		t = NopTracer{}
	}
	m.tracer = t
}

// Stack exposes the machine's value stack for observation.
func (m *Machine) Stack() *ValueStack {
	return m.stack
}

// Run executes the program to completion. The loop terminates the instant
// the program counter falls outside [0, len(program)) before a fetch; a
// large backward branch driving the counter negative terminates the same
// way as running off the end.
//
// Each step fetches the instruction at the counter, executes it, then
// advances the counter by 1 unconditionally. Branch opcodes add their
// offset on top of that advance, so the net jump distance is offset+1.
//
// An instruction whose stack precondition is not met is skipped as a
// no-op and reported to the tracer; the counter still advances by 1.
// Nothing at execution time is an error.
func (m *Machine) Run() {
	m.pc = 0
	for m.pc >= 0 && m.pc < len(m.program) {
		at := m.pc
		in := m.program[at]
		if m.stack.Len() < in.Op().MinStack() {
			m.tracer.TraceSkip(at, in, m.stack.TopToBottom())
		} else {
			m.execute(at, in)
			m.tracer.TraceStep(at, in, m.stack.TopToBottom())
		}
		m.pc++
	}
}

// execute dispatches one instruction whose stack precondition holds.
// The switch is exhaustive over the opcode set; construction-time
// validation guarantees no other opcode can reach it.
func (m *Machine) execute(at int, in Instruction) {
	switch in.Op() {
	case OpLoadcon:
		v, _ := in.Operand()
		m.push(at, in, v)

	case OpZero:
		m.push(at, in, 0)

	case OpOne:
		m.push(at, in, 1)

	case OpDup:
		v, _ := m.stack.Pop()
		m.push(at, in, v)
		m.push(at, in, v)

	case OpSwap:
		a, _ := m.stack.Pop()
		b, _ := m.stack.Pop()
		m.push(at, in, a)
		m.push(at, in, b)

	case OpNegate:
		a, _ := m.stack.Pop()
		m.push(at, in, -a)

	case OpAdd:
		a, _ := m.stack.Pop()
		b, _ := m.stack.Pop()
		m.push(at, in, a+b)

	case OpMpy:
		a, _ := m.stack.Pop()
		b, _ := m.stack.Pop()
		m.push(at, in, a*b)

	case OpEqual:
		a, _ := m.stack.Pop()
		b, _ := m.stack.Pop()
		m.push(at, in, truth(a == b))

	case OpLess:
		top, _ := m.stack.Pop()
		second, _ := m.stack.Pop()
		m.push(at, in, truth(second < top))

	case OpWrite:
		v, _ := m.stack.Pop()
		m.sink.Write(v)

	case OpBr:
		offset, _ := m.stack.Pop()
		m.pc += int(offset)

	case OpBrFalse:
		offset, _ := m.stack.Pop()
		cond, _ := m.stack.Pop()
		if cond != TrueValue {
			m.pc += int(offset)
		}
	}
}

// push pushes v, reporting a drop to the tracer when the stack is full.
func (m *Machine) push(at int, in Instruction, v int64) {
	if !m.stack.Push(v) {
		m.tracer.TraceDrop(at, in, v)
	}
}

func truth(b bool) int64 {
	if b {
		return TrueValue
	}
	return FalseValue
}
