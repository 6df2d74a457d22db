package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

type fakeEmitter struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeEmitter) EmitProgressReports(_ context.Context, frequency string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, frequency)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func (f *fakeEmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNewReportScheduler(t *testing.T) {
	tests := []struct {
		name      string
		schedules Schedules
		wantErr   bool
		want      []string
	}{
		{
			name:      "defaults",
			schedules: DefaultSchedules(),
			want:      []string{models.ReportFrequencyDaily, models.ReportFrequencyWeekly, models.ReportFrequencyMonthly},
		},
		{
			name:      "daily only",
			schedules: Schedules{Daily: "0 8 * * *"},
			want:      []string{models.ReportFrequencyDaily},
		},
		{
			name:      "bad spec",
			schedules: Schedules{Weekly: "every tuesday"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewReportScheduler(&fakeEmitter{}, tt.schedules, zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.entries, len(tt.want))
			for _, f := range tt.want {
				assert.Contains(t, s.entries, f)
			}
		})
	}
}

func TestReportScheduler_Next(t *testing.T) {
	s, err := NewReportScheduler(&fakeEmitter{}, Schedules{Daily: "@daily"}, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	defer s.Stop(context.Background())

	next, ok := s.Next(models.ReportFrequencyDaily)
	require.True(t, ok)
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 0, next.Hour())

	_, ok = s.Next(models.ReportFrequencyMonthly)
	assert.False(t, ok)
}

func TestReportScheduler_RunNow(t *testing.T) {
	emitter := &fakeEmitter{}
	s, err := NewReportScheduler(emitter, DefaultSchedules(), zerolog.Nop())
	require.NoError(t, err)

	n, err := s.RunNow(context.Background(), models.ReportFrequencyWeekly)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{models.ReportFrequencyWeekly}, emitter.calls)

	emitter.err = errors.New("engine closed")
	_, err = s.RunNow(context.Background(), models.ReportFrequencyWeekly)
	assert.ErrorContains(t, err, "engine closed")
}

func TestReportScheduler_Fires(t *testing.T) {
	emitter := &fakeEmitter{}
	s, err := NewReportScheduler(emitter, Schedules{Daily: "@every 1s"}, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return emitter.callCount() > 0 }, 3*time.Second, 50*time.Millisecond)
}
