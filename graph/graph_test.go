package graph

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"corebot/layer"
	"corebot/task"
)

// stubLayer is a minimal layer.Layer for graph-level tests; it never runs Process.
type stubLayer struct {
	name    string
	inputs  task.Set
	outputs task.Set
}

func newStub(name string, inputs, outputs task.Set) *stubLayer {
	return &stubLayer{name: name, inputs: inputs, outputs: outputs}
}

func (s *stubLayer) InputTasks() task.Set                { return s.inputs }
func (s *stubLayer) OutputTasks() task.Set               { return s.outputs }
func (s *stubLayer) Setup(ctx *layer.SetupContext) error { return nil }
func (s *stubLayer) AcceptTask(t task.Task) error         { return nil }
func (s *stubLayer) Process(ctx *layer.ProcessContext)    {}
func (s *stubLayer) SubtaskCompleted(t task.Task) error   { return nil }

func TestAddConnection(t *testing.T) {
	Convey("Given a fresh graph", t, func() {
		g := New()

		Convey("connecting compatible layers succeeds", func() {
			p := newStub("p", task.NewSet(), task.NewSet(task.KindWin))
			c := newStub("c", task.NewSet(task.KindWin), task.NewSet())

			So(g.AddConnection(p, c), ShouldBeNil)
			So(g.GetChildren(p), ShouldResemble, []layer.Layer{c})
			So(g.GetParents(c), ShouldResemble, []layer.Layer{p})
		})

		Convey("connecting incompatible layers fails and leaves no edge", func() {
			p := newStub("p", task.NewSet(), task.NewSet(task.KindWin))
			c := newStub("c", task.NewSet(task.KindLift), task.NewSet())

			err := g.AddConnection(p, c)
			So(err, ShouldNotBeNil)
			So(g.GetChildren(p), ShouldBeEmpty)
		})

		Convey("widening lets a narrower output satisfy a broader input", func() {
			p := newStub("p", task.NewSet(), task.NewSet(task.KindAxialMovement))
			c := newStub("c", task.NewSet(task.KindLinearMovement), task.NewSet())

			So(g.AddConnection(p, c), ShouldBeNil)
		})

		Convey("adding an edge that would close a cycle fails and leaves the graph unchanged", func() {
			a := newStub("a", task.NewSet(task.KindWin), task.NewSet(task.KindWin))
			b := newStub("b", task.NewSet(task.KindWin), task.NewSet(task.KindWin))
			c := newStub("c", task.NewSet(task.KindWin), task.NewSet(task.KindWin))

			So(g.AddConnection(a, b), ShouldBeNil)
			So(g.AddConnection(b, c), ShouldBeNil)

			err := g.AddConnection(c, a)
			So(err, ShouldNotBeNil)
			So(g.GetChildren(c), ShouldBeEmpty)
			// the earlier edges must survive the rejected attempt
			So(g.GetChildren(a), ShouldResemble, []layer.Layer{b})
		})
	})
}

func TestAddChain(t *testing.T) {
	Convey("Given a fresh graph", t, func() {
		g := New()

		Convey("a chain of fewer than two layers is rejected", func() {
			a := newStub("a", task.NewSet(), task.NewSet(task.KindWin))
			So(g.AddChain([]layer.Layer{a}), ShouldEqual, ErrShortChain)
		})

		Convey("a valid chain links every consecutive pair", func() {
			a := newStub("a", task.NewSet(), task.NewSet(task.KindWin))
			b := newStub("b", task.NewSet(task.KindWin), task.NewSet(task.KindLift))
			c := newStub("c", task.NewSet(task.KindLift), task.NewSet())

			So(g.AddChain([]layer.Layer{a, b, c}), ShouldBeNil)
			So(g.GetChildren(a), ShouldResemble, []layer.Layer{b})
			So(g.GetChildren(b), ShouldResemble, []layer.Layer{c})
		})
	})
}

func TestSourcesAndSinks(t *testing.T) {
	Convey("Given a graph a -> b -> c and a -> d", t, func() {
		g := New()
		a := newStub("a", task.NewSet(), task.NewSet(task.KindWin))
		b := newStub("b", task.NewSet(task.KindWin), task.NewSet(task.KindWin))
		c := newStub("c", task.NewSet(task.KindWin), task.NewSet())
		d := newStub("d", task.NewSet(task.KindWin), task.NewSet())

		So(g.AddConnection(a, b), ShouldBeNil)
		So(g.AddConnection(b, c), ShouldBeNil)
		So(g.AddConnection(a, d), ShouldBeNil)

		Convey("a is the only source", func() {
			So(g.GetSources(), ShouldResemble, []layer.Layer{a})
		})

		Convey("c and d are the sinks", func() {
			sinks := g.GetSinks()
			So(sinks, ShouldHaveLength, 2)
			So(sinks, ShouldContain, layer.Layer(c))
			So(sinks, ShouldContain, layer.Layer(d))
		})
	})
}
