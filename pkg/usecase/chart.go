package usecase

import (
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
)

// ChartSlot names the canvas a chart instance is drawn on
type ChartSlot string

const (
	ChartSlotRadar       ChartSlot = "riskRadarChart"
	ChartSlotComposition ChartSlot = "riskCompositionChart"
)

// ChartInstance is one rendered chart bound to a slot. The browser keys its
// Chart.js object by ID and destroys it when the instance is replaced.
type ChartInstance struct {
	ID     string
	Slot   ChartSlot
	Config model.ChartConfig

	destroyed atomic.Bool
}

// Destroy releases the instance. It is safe to call more than once.
func (c *ChartInstance) Destroy() {
	c.destroyed.Store(true)
}

// Destroyed reports whether the instance was replaced
func (c *ChartInstance) Destroyed() bool {
	return c.destroyed.Load()
}

// chartSlots owns at most one live instance per slot. Not safe for concurrent
// use; the owning Dashboard serializes access.
type chartSlots struct {
	instances map[ChartSlot]*ChartInstance
}

func newChartSlots() *chartSlots {
	return &chartSlots{instances: make(map[ChartSlot]*ChartInstance)}
}

// replace destroys the instance currently bound to slot, then binds a new one
func (s *chartSlots) replace(slot ChartSlot, cfg model.ChartConfig) *ChartInstance {
	if old, ok := s.instances[slot]; ok {
		old.Destroy()
	}

	inst := &ChartInstance{
		ID:     uuid.New().String(),
		Slot:   slot,
		Config: cfg,
	}
	s.instances[slot] = inst
	return inst
}

func (s *chartSlots) live() []*ChartInstance {
	result := make([]*ChartInstance, 0, len(s.instances))
	for _, inst := range s.instances {
		result = append(result, inst)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slot < result[j].Slot })
	return result
}
