package scene

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscope/pkg/geom"
	"github.com/matzehuels/boxscope/pkg/observability"
)

// anomalyRecorder captures scene anomalies for assertions.
type anomalyRecorder struct {
	observability.NoopSceneHooks
	kinds []observability.AnomalyKind
	refs  []string
}

func (r *anomalyRecorder) OnAnomaly(kind observability.AnomalyKind, _, ref string) {
	r.kinds = append(r.kinds, kind)
	r.refs = append(r.refs, ref)
}

func recordAnomalies(t *testing.T) *anomalyRecorder {
	t.Helper()
	r := &anomalyRecorder{}
	observability.SetSceneHooks(r)
	t.Cleanup(observability.Reset)
	return r
}

func bounds(x, y, w, h float64) geom.Bounds {
	return geom.Bounds{X: x, Y: y, Width: w, Height: h}
}

func quietProjector() *Projector {
	return NewProjector(log.New(&bytes.Buffer{}))
}

// nestedMap is R(0,0,200,200) > A(10,10,50,50) > B(5,5,20,20).
func nestedMap() NodeMap {
	return NodeMap{
		"R": {ID: "R", Name: "root", Bounds: bounds(0, 0, 200, 200), Children: []string{"A"}},
		"A": {ID: "A", Name: "a", Bounds: bounds(10, 10, 50, 50), Children: []string{"B"}, Parent: "R"},
		"B": {ID: "B", Name: "b", Bounds: bounds(5, 5, 20, 20), Parent: "A"},
	}
}
