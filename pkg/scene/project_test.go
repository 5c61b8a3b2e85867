package scene

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxscope/pkg/observability"
)

func TestProjectDropsDanglingChildren(t *testing.T) {
	rec := recordAnomalies(t)
	var buf bytes.Buffer
	p := NewProjector(log.New(&buf))

	nodes := NodeMap{
		"A": {ID: "A", Bounds: bounds(0, 0, 100, 100), Children: []string{"B", "ghost"}},
		"B": {ID: "B", Bounds: bounds(0, 0, 10, 10), Parent: "A"},
	}

	root := p.Project("A", nodes)
	if root == nil {
		t.Fatal("Project() returned nil")
	}
	if len(root.Children) != 1 || root.Children[0].ID != "B" {
		t.Fatalf("children = %v, want [B]", HitIDs(root.Children))
	}

	if len(rec.kinds) != 1 {
		t.Fatalf("anomalies = %d, want 1", len(rec.kinds))
	}
	if rec.kinds[0] != observability.AnomalyDanglingChild || rec.refs[0] != "ghost" {
		t.Errorf("anomaly = %v %q, want %v %q", rec.kinds[0], rec.refs[0], observability.AnomalyDanglingChild, "ghost")
	}
	if got := strings.Count(buf.String(), "dangling reference"); got != 1 {
		t.Errorf("logged anomalies = %d, want 1\n%s", got, buf.String())
	}
}

func TestProjectActiveChild(t *testing.T) {
	tests := []struct {
		name     string
		children []string
		active   string
		want     int
	}{
		{"active second", []string{"B", "C"}, "C", 1},
		{"active first", []string{"B", "C"}, "B", 0},
		{"no active", []string{"B", "C"}, "", NoActiveChild},
		{"dangling active", []string{"B", "C"}, "ghost", NoActiveChild},
		{"active listed but dangling", []string{"B", "ghost", "C"}, "ghost", NoActiveChild},
		{"index after dropped child", []string{"ghost", "B", "C"}, "C", 1},
		{"active not a child", []string{"B"}, "C", NoActiveChild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recordAnomalies(t)
			nodes := NodeMap{
				"A": {ID: "A", Children: tt.children, ActiveChild: tt.active},
				"B": {ID: "B", Parent: "A"},
				"C": {ID: "C", Parent: "A"},
			}
			root := quietProjector().Project("A", nodes)
			if root.ActiveChild != tt.want {
				t.Errorf("ActiveChild = %d, want %d", root.ActiveChild, tt.want)
			}
		})
	}
}

func TestProjectDanglingActiveReportedOnce(t *testing.T) {
	tests := []struct {
		name     string
		children []string
		wantKind []observability.AnomalyKind
	}{
		{"active not in child list", []string{"B"}, []observability.AnomalyKind{observability.AnomalyDanglingActive}},
		{"active in child list", []string{"B", "ghost"}, []observability.AnomalyKind{observability.AnomalyDanglingChild}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recordAnomalies(t)
			nodes := NodeMap{
				"A": {ID: "A", Children: tt.children, ActiveChild: "ghost"},
				"B": {ID: "B", Parent: "A"},
			}
			quietProjector().Project("A", nodes)
			if !reflect.DeepEqual(rec.kinds, tt.wantKind) {
				t.Errorf("anomalies = %v, want %v", rec.kinds, tt.wantKind)
			}
		})
	}
}

func TestProjectMissingRoot(t *testing.T) {
	if got := quietProjector().Project("nope", nestedMap()); got != nil {
		t.Errorf("Project() = %v, want nil", got)
	}
	if got := quietProjector().Project("R", nil); got != nil {
		t.Errorf("Project(nil map) = %v, want nil", got)
	}
}

func TestProjectPreservesShape(t *testing.T) {
	root := quietProjector().Project("R", nestedMap())

	if got := Count(root); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	b := Find(root, "B")
	if b == nil {
		t.Fatal("Find(B) = nil")
	}
	if b.Bounds != bounds(5, 5, 20, 20) {
		t.Errorf("B bounds = %v, want (5, 5, 20×20)", b.Bounds)
	}
	if b.Name != "b" {
		t.Errorf("B name = %q, want %q", b.Name, "b")
	}
}

func TestProjectDeepHierarchy(t *testing.T) {
	const depth = 2000
	nodes := NodeMap{}
	for i := 0; i < depth; i++ {
		n := RawNode{ID: fmt.Sprint(i), Bounds: bounds(1, 1, 10, 10)}
		if i+1 < depth {
			n.Children = []string{fmt.Sprint(i + 1)}
		}
		if i > 0 {
			n.Parent = fmt.Sprint(i - 1)
		}
		nodes[n.ID] = n
	}

	root := quietProjector().Project("0", nodes)
	if got := Count(root); got != depth {
		t.Errorf("Count() = %d, want %d", got, depth)
	}
}

func TestProjectIsPure(t *testing.T) {
	nodes := nestedMap()
	p := quietProjector()

	first := p.Project("R", nodes)
	second := p.Project("R", nodes)
	if first == second {
		t.Error("Project() should build a fresh tree on every call")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Project() results differ for identical input")
	}
	if !reflect.DeepEqual(nodes, nestedMap()) {
		t.Error("Project() modified its input")
	}
}

func TestProjectNilLogger(t *testing.T) {
	recordAnomalies(t)
	p := &Projector{}
	nodes := NodeMap{"A": {ID: "A", Children: []string{"ghost"}}}
	log.SetOutput(&bytes.Buffer{})
	defer log.SetOutput(os.Stderr)

	if root := p.Project("A", nodes); root == nil || len(root.Children) != 0 {
		t.Errorf("Project() = %+v, want root without children", root)
	}
}
