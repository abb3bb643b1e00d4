package main

import (
	"time"

	"github.com/stratahsm/strata"
)

// Messages flowing through the patrol machine.
type noiseHeard struct{ where string }
type scanDue struct{}
type allClear struct{}
type reliefArrived struct{}

// onDuty anchors everything the guard does while clocked in. Relief ends
// the shift no matter which descendant is active.
type onDuty struct {
	strata.Base
}

func (s *onDuty) Exit() { step("clocking out") }

// patrolling covers the regular route. A noise anywhere under it breaks
// the guard off to investigate.
type patrolling struct {
	strata.Base
}

func (s *patrolling) Enter() { step("resuming the patrol route") }
func (s *patrolling) Exit()  { step("leaving the patrol route") }

// walking is the default activity. Every few paces the guard stops for a
// scan sweep.
type walking struct {
	strata.Base
	scanEvery time.Duration
}

func (s *walking) Arrive() {
	step("walking the rounds")
	s.RemindIn(s.scanEvery, scanDue{})
}

// scanning is a short stop on the route.
type scanning struct {
	strata.Base
	scanFor time.Duration
}

func (s *scanning) Arrive() {
	step("pausing for a scan sweep")
	s.RemindIn(s.scanFor, allClear{})
}

// investigating chases a noise until the area stays quiet long enough.
type investigating struct {
	strata.Base
	searchFor time.Duration
	site      string
}

func (s *investigating) Arrive() {
	step("checking out the noise at %s", s.site)
	s.RemindIn(s.searchFor, allClear{})
}

// offDuty lives outside the duty tree, so entering it unwinds the whole
// active chain.
type offDuty struct {
	strata.Base
	done bool
}

func (s *offDuty) Arrive() {
	step("heading home")
	s.done = true
}

// chart wires the guard's states into one duty hierarchy.
//
//	onDuty
//	├── patrolling
//	│   ├── walking
//	│   └── scanning
//	└── investigating
//
// offDuty stands alone; the shift-ending transition crosses trees.
type chart struct {
	duty          *onDuty
	patrolling    *patrolling
	walking       *walking
	scanning      *scanning
	investigating *investigating
	off           *offDuty
}

func buildChart(pace time.Duration) (*chart, error) {
	c := &chart{
		duty:          &onDuty{},
		patrolling:    &patrolling{},
		walking:       &walking{scanEvery: 4 * pace},
		scanning:      &scanning{scanFor: 2 * pace},
		investigating: &investigating{searchFor: 6 * pace},
		off:           &offDuty{},
	}

	c.patrolling.SetParent(strata.For[*onDuty]())
	c.walking.SetParent(strata.For[*patrolling]())
	c.scanning.SetParent(strata.For[*patrolling]())
	c.investigating.SetParent(strata.For[*onDuty]())

	subs := []error{
		c.walking.Subscribe(strata.For[scanDue](), func(strata.Message) bool {
			_ = c.walking.RequestTransition(c.scanning)
			return true
		}),
		c.scanning.Subscribe(strata.For[allClear](), func(strata.Message) bool {
			_ = c.scanning.RequestTransition(c.walking)
			return true
		}),
		c.patrolling.Subscribe(strata.For[noiseHeard](), func(msg strata.Message) bool {
			noise := msg.(noiseHeard)
			event("noise from %s, breaking off to investigate", noise.where)
			c.investigating.site = noise.where
			_ = c.patrolling.RequestTransition(c.investigating)
			return true
		}),
		c.investigating.Subscribe(strata.For[noiseHeard](), func(msg strata.Message) bool {
			noise := msg.(noiseHeard)
			event("more noise from %s, noting it", noise.where)
			return true
		}),
		c.investigating.Subscribe(strata.For[allClear](), func(strata.Message) bool {
			step("area quiet, search over")
			_ = c.investigating.RequestTransition(c.walking)
			return true
		}),
		c.duty.Subscribe(strata.For[reliefArrived](), func(strata.Message) bool {
			_ = c.duty.RequestTransition(c.off)
			return true
		}),
	}
	for _, err := range subs {
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *chart) states() []strata.State {
	return []strata.State{c.duty, c.patrolling, c.walking, c.scanning, c.investigating, c.off}
}
