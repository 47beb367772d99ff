package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{"03:00", ScheduleTime{3, 0}, false},
		{"23:59", ScheduleTime{23, 59}, false},
		{"0:5", ScheduleTime{0, 5}, false},
		{"24:00", ScheduleTime{}, true},
		{"12:60", ScheduleTime{}, true},
		{"notatime", ScheduleTime{}, true},
	}

	for _, tt := range tests {
		got, err := ParseScheduleTime(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseScheduleTime(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseScheduleTime(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScheduleTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestShouldRun_FirstOfMonthOnly(t *testing.T) {
	s := &Scheduler{closeTime: ScheduleTime{Hour: 3, Minute: 0}}

	firstAtThree := time.Date(2025, time.April, 1, 3, 0, 30, 0, time.UTC)
	if !s.shouldRun(firstAtThree) {
		t.Error("expected trigger on day 1 at close time")
	}

	// Same month must not fire twice.
	if s.shouldRun(firstAtThree.Add(10 * time.Second)) {
		t.Error("expected monthly guard to suppress second trigger")
	}

	// Next month fires again.
	if !s.shouldRun(time.Date(2025, time.May, 1, 3, 0, 0, 0, time.UTC)) {
		t.Error("expected trigger in following month")
	}
}

func TestShouldRun_WrongDayOrTime(t *testing.T) {
	s := &Scheduler{closeTime: ScheduleTime{Hour: 3, Minute: 0}}

	cases := []time.Time{
		time.Date(2025, time.April, 2, 3, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 1, 4, 0, 0, 0, time.UTC),
		time.Date(2025, time.April, 1, 3, 1, 0, 0, time.UTC),
	}
	for _, now := range cases {
		if s.shouldRun(now) {
			t.Errorf("unexpected trigger at %s", now)
		}
	}
}

type recordedJob struct {
	mu       sync.Mutex
	executed int
	userID   string
}

func (j *recordedJob) Execute(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.executed++
	return nil
}

func (j *recordedJob) UserID() string      { return j.userID }
func (j *recordedJob) Description() string { return "recorded job" }

func TestWorkerPool_ProcessesSubmittedJobs(t *testing.T) {
	pool := NewWorkerPool(2, 0, 10)
	pool.Start()

	jobs := []*recordedJob{
		{userID: "user-1"},
		{userID: "user-2"},
		{userID: "user-3"},
	}
	for _, j := range jobs {
		if err := pool.Submit(j); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	pool.Shutdown()

	for _, j := range jobs {
		if j.executed != 1 {
			t.Errorf("job for %s executed %d times, want 1", j.userID, j.executed)
		}
	}
}

func TestWorkerPool_FullQueueDropsJob(t *testing.T) {
	// No workers started, queue of one: second submit must be rejected.
	pool := NewWorkerPool(1, 0, 1)

	if err := pool.Submit(&recordedJob{userID: "user-1"}); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	if err := pool.Submit(&recordedJob{userID: "user-2"}); err == nil {
		t.Error("expected error submitting to full queue")
	}
}
