package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/boxscope/pkg/observability"
)

// anomalyCounter tallies scene anomalies so commands can print a summary
// after the per-reference warnings have scrolled by.
type anomalyCounter struct {
	observability.NoopSceneHooks

	mu     sync.Mutex
	counts map[observability.AnomalyKind]int
}

func (a *anomalyCounter) OnAnomaly(kind observability.AnomalyKind, _, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.counts == nil {
		a.counts = make(map[observability.AnomalyKind]int)
	}
	a.counts[kind]++
}

// total returns the number of anomalies seen.
func (a *anomalyCounter) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.counts {
		n += c
	}
	return n
}

// summary formats the counts as "2 dangling_child, 1 dangling_parent".
func (a *anomalyCounter) summary() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	parts := make([]string, 0, len(a.counts))
	for _, kind := range slices.Sorted(maps.Keys(a.counts)) {
		parts = append(parts, fmt.Sprintf("%d %s", a.counts[kind], kind))
	}
	return strings.Join(parts, ", ")
}

func (a *anomalyCounter) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts = nil
}

// reportAnomalies prints a warning line when the loaded hierarchy had
// dangling references.
func (c *CLI) reportAnomalies() {
	if c.anomalies.total() == 0 {
		return
	}
	printWarning("Hierarchy has dangling references: %s", c.anomalies.summary())
}
