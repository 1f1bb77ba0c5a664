package system

import (
	"testing"
	"time"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
}

func (r *recorder) Phase() Phase           { return r.phase }
func (r *recorder) Update(_ time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhaseStable(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recorder{PhaseCleanup, "cleanup", &log})
	r.Register(&recorder{PhaseStream, "stream-a", &log})
	r.Register(&recorder{PhaseInput, "input", &log})
	r.Register(&recorder{PhaseStream, "stream-b", &log})

	r.Tick(time.Millisecond)

	want := []string{"input", "stream-a", "stream-b", "cleanup"}
	if len(log) != len(want) {
		t.Fatalf("got %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v, want %v", log, want)
		}
	}
}

func TestTickPhaseRunsOnlyThatPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recorder{PhaseStream, "stream", &log})
	r.Register(&recorder{PhaseUpdate, "update", &log})

	r.TickPhase(PhaseUpdate, time.Millisecond)
	if len(log) != 1 || log[0] != "update" {
		t.Errorf("got %v", log)
	}
}

func TestRunnerCountsPerPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recorder{PhaseUpdate, "vehicles", &log})
	r.Register(&recorder{PhaseUpdate, "airplanes", &log})
	r.Register(&recorder{PhaseCleanup, "cleanup", &log})
	if r.Count(PhaseUpdate) != 2 || r.Count(PhaseStream) != 0 || r.Len() != 3 {
		t.Errorf("update=%d stream=%d len=%d", r.Count(PhaseUpdate), r.Count(PhaseStream), r.Len())
	}
	if PhasePostUpdate.String() != "post_update" || Phase(42).String() != "unknown" {
		t.Error("phase names")
	}
}

func TestRegisterUnknownPhasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	var log []string
	NewRunner().Register(&recorder{Phase(9), "bogus", &log})
}
