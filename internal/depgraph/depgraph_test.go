package depgraph

import (
	"reflect"
	"testing"
)

func TestAddWiresBothDirections(t *testing.T) {
	g := New()
	g.Add("c", []string{"a", "b"})
	g.Add("d", []string{"a"})

	if got := g.Prerequisites("c"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Prerequisites(c) = %v", got)
	}
	if got := g.Dependents("a"); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("Dependents(a) = %v", got)
	}
	if got := g.Dependents("b"); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("Dependents(b) = %v", got)
	}
}

func TestRemoveDropsReverseEdges(t *testing.T) {
	g := New()
	g.Add("c", []string{"a", "b"})
	g.Add("d", []string{"a"})

	g.Remove("c")

	if got := g.Prerequisites("c"); len(got) != 0 {
		t.Errorf("Prerequisites(c) after Remove = %v", got)
	}
	if got := g.Dependents("a"); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("Dependents(a) after Remove = %v", got)
	}
	if got := g.Dependents("b"); len(got) != 0 {
		t.Errorf("Dependents(b) after Remove = %v", got)
	}
}

func TestReset(t *testing.T) {
	g := New()
	g.Add("b", []string{"a"})
	g.Reset()

	if len(g.Prerequisites("b")) != 0 || len(g.Dependents("a")) != 0 {
		t.Error("graph not empty after Reset")
	}
}
