package schedule

import "testing"

func TestScheduleCronRejectsInvalidExpression(t *testing.T) {
	s := New()
	if err := s.ScheduleCron("not a cron expression", func() {}); err == nil {
		t.Error("ScheduleCron() error = nil, want an error for an invalid cron expression")
	}
}

func TestScheduleCronAcceptsValidExpression(t *testing.T) {
	s := New()
	defer s.Stop()
	if err := s.ScheduleCron("0 3 * * *", func() {}); err != nil {
		t.Errorf("ScheduleCron() error = %v, want nil for a valid daily expression", err)
	}
}

func TestStartStopDoNotPanic(t *testing.T) {
	s := New()
	if err := s.ScheduleCron("0 3 * * *", func() {}); err != nil {
		t.Fatalf("ScheduleCron() error = %v", err)
	}
	s.Start()
	s.Stop()
}
