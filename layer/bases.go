package layer

import "corebot/task"

// FunctionMapLayer is the 1:1 utility base from spec §4.E: accept_task stages a single mapped
// subtask; process emits it once, and completes the parent task once the child acknowledges.
// Embedders supply MapFunc.
type FunctionMapLayer struct {
	// MapFunc maps an accepted task to the single subtask this layer emits in response.
	MapFunc func(t task.Task) task.Task
	Inputs  task.Set
	Outputs task.Set

	pending      task.Task // the task accepted, awaiting completion
	staged       task.Task // the mapped subtask, awaiting emission or acknowledgment
	emitted      bool
	acknowledged bool
}

// NewFunctionMapLayer builds a FunctionMapLayer declaring inputs/outputs and mapping tasks with
// mapFunc.
func NewFunctionMapLayer(inputs, outputs task.Set, mapFunc func(t task.Task) task.Task) *FunctionMapLayer {
	return &FunctionMapLayer{MapFunc: mapFunc, Inputs: inputs, Outputs: outputs, acknowledged: true}
}

func (l *FunctionMapLayer) InputTasks() task.Set  { return l.Inputs }
func (l *FunctionMapLayer) OutputTasks() task.Set { return l.Outputs }
func (l *FunctionMapLayer) Setup(ctx *SetupContext) error { return nil }

func (l *FunctionMapLayer) AcceptTask(t task.Task) error {
	l.pending = t
	l.staged = l.MapFunc(t)
	l.emitted = false
	l.acknowledged = false
	return nil
}

func (l *FunctionMapLayer) Process(ctx *ProcessContext) {
	if l.pending == nil {
		ctx.RequestTask()
		return
	}
	if !l.emitted {
		ctx.EmitSubtask(l.staged)
		l.emitted = true
		return
	}
	if l.acknowledged {
		ctx.CompleteTask(l.pending)
		l.pending = nil
		l.staged = nil
		ctx.RequestTask()
	}
}

func (l *FunctionMapLayer) SubtaskCompleted(t task.Task) error {
	if t != l.staged {
		return ErrMisuse
	}
	l.acknowledged = true
	return nil
}

// QueuedLayer is the 1:N utility base from spec §4.E: accept_task builds a finite ordered
// sequence of subtasks; process emits them one at a time, completing the parent task once the
// sequence is exhausted. Embedders supply ExpandFunc.
type QueuedLayer struct {
	// ExpandFunc maps an accepted task to the ordered sequence of subtasks to emit for it.
	ExpandFunc func(t task.Task) []task.Task
	Inputs     task.Set
	Outputs    task.Set

	pending      task.Task
	queue        []task.Task
	current      task.Task
	emitted      bool
	acknowledged bool
}

// NewQueuedLayer builds a QueuedLayer declaring inputs/outputs and expanding tasks with
// expandFunc.
func NewQueuedLayer(inputs, outputs task.Set, expandFunc func(t task.Task) []task.Task) *QueuedLayer {
	return &QueuedLayer{ExpandFunc: expandFunc, Inputs: inputs, Outputs: outputs, acknowledged: true}
}

func (l *QueuedLayer) InputTasks() task.Set  { return l.Inputs }
func (l *QueuedLayer) OutputTasks() task.Set { return l.Outputs }
func (l *QueuedLayer) Setup(ctx *SetupContext) error { return nil }

func (l *QueuedLayer) AcceptTask(t task.Task) error {
	l.pending = t
	l.queue = l.ExpandFunc(t)
	l.current = nil
	l.emitted = false
	l.acknowledged = true
	return nil
}

func (l *QueuedLayer) Process(ctx *ProcessContext) {
	if l.pending == nil {
		ctx.RequestTask()
		return
	}
	if l.current != nil && !l.acknowledged {
		return
	}
	if len(l.queue) == 0 {
		ctx.CompleteTask(l.pending)
		l.pending = nil
		l.current = nil
		ctx.RequestTask()
		return
	}
	l.current, l.queue = l.queue[0], l.queue[1:]
	l.acknowledged = false
	ctx.EmitSubtask(l.current)
}

func (l *QueuedLayer) SubtaskCompleted(t task.Task) error {
	if t != l.current {
		return ErrMisuse
	}
	l.acknowledged = true
	return nil
}

// SequenceLayer composes a fixed list of sublayers serially (spec §4.E): the accepted task is
// forwarded to every sublayer when it is accepted (and again to each sublayer as it becomes
// active), exactly one sublayer is active at any moment, and the outer caller observes a single
// completion only when the last sublayer completes.
type SequenceLayer struct {
	sublayers []Layer
	active    int
	setupCtx  *SetupContext
	pending   task.Task
}

// NewSequenceLayer builds a SequenceLayer over sublayers, run in order.
func NewSequenceLayer(sublayers []Layer) *SequenceLayer {
	return &SequenceLayer{sublayers: sublayers, active: -1}
}

// InputTasks is the first sublayer's input_tasks: the sequence as a whole accepts whatever its
// first active sublayer accepts.
func (l *SequenceLayer) InputTasks() task.Set { return l.sublayers[0].InputTasks() }

// OutputTasks is the union of every sublayer's output_tasks, since any sublayer may be active
// when the sequence emits.
func (l *SequenceLayer) OutputTasks() task.Set {
	out := task.Set{}
	for _, sub := range l.sublayers {
		for k := range sub.OutputTasks() {
			out[k] = struct{}{}
		}
	}
	return out
}

func (l *SequenceLayer) Setup(ctx *SetupContext) error {
	l.setupCtx = ctx
	for _, sub := range l.sublayers {
		if err := sub.Setup(ctx); err != nil {
			return err
		}
	}
	l.active = 0
	return nil
}

func (l *SequenceLayer) AcceptTask(t task.Task) error {
	l.active = 0
	l.pending = t
	for _, sub := range l.sublayers {
		if err := sub.AcceptTask(t); err != nil {
			return err
		}
	}
	return nil
}

func (l *SequenceLayer) Process(ctx *ProcessContext) {
	if l.active >= len(l.sublayers) {
		ctx.RequestTask()
		return
	}
	inner := NewProcessContext()
	l.sublayers[l.active].Process(inner)

	for _, s := range inner.Subtasks() {
		ctx.EmitSubtask(s)
	}
	advanced := false
	for _, c := range inner.Completed() {
		if l.active == len(l.sublayers)-1 {
			ctx.CompleteTask(c)
			l.active++
		} else {
			l.active++
			// Forward the sequence's original task to the newly active sublayer; it will not
			// emit anything until its own next Process call.
			_ = l.sublayers[l.active].AcceptTask(l.pending)
		}
		advanced = true
	}
	if inner.Escalated() && !advanced {
		ctx.RequestTask()
	}
}

func (l *SequenceLayer) SubtaskCompleted(t task.Task) error {
	if l.active >= len(l.sublayers) {
		return ErrMisuse
	}
	return l.sublayers[l.active].SubtaskCompleted(t)
}

// WinLayer is the terminal source layer from spec §4.E: it emits a single Win task once, waits
// silently (neither re-emitting nor escalating) for acknowledgment, then requests a new task
// forever after, escalating indefinitely. It never emits a second Win task even across repeated
// ticks. It has no parents and rejects any
// accept_task call.
type WinLayer struct {
	win     *task.Win
	emitted bool
	done    bool
}

// NewWinLayer builds a WinLayer.
func NewWinLayer() *WinLayer {
	return &WinLayer{win: &task.Win{}}
}

func (l *WinLayer) InputTasks() task.Set  { return task.NewSet() }
func (l *WinLayer) OutputTasks() task.Set { return task.NewSet(task.KindWin) }

func (l *WinLayer) Setup(ctx *SetupContext) error { return nil }

func (l *WinLayer) AcceptTask(t task.Task) error {
	return ErrUnsupportedTask
}

func (l *WinLayer) Process(ctx *ProcessContext) {
	if l.done {
		ctx.RequestTask()
		return
	}
	if !l.emitted {
		ctx.EmitSubtask(l.win)
		l.emitted = true
	}
}

func (l *WinLayer) SubtaskCompleted(t task.Task) error {
	if t != task.Task(l.win) {
		return ErrMisuse
	}
	l.done = true
	return nil
}
