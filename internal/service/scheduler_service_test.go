package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:00", want: "0 0 8 * * *"},
		{in: "23:59", want: "0 59 23 * * *"},
		{in: "7:5", want: "0 5 7 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := buildDailySpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchedulerService_Register(t *testing.T) {
	s := NewSchedulerService(time.UTC, 0)
	noop := func(context.Context) error { return nil }

	_, err := s.ScheduleInterval("zero", 0, noop)
	assert.Error(t, err)

	_, err = s.ScheduleInterval("backup", time.Hour, noop)
	require.NoError(t, err)
	_, err = s.ScheduleDaily("reminders", "08:30", noop)
	require.NoError(t, err)
	_, err = s.ScheduleDaily("bad", "8", noop)
	assert.Error(t, err)

	assert.Equal(t, 2, s.Len())
}

func TestSchedulerService_WrapAppliesTimeout(t *testing.T) {
	s := NewSchedulerService(time.UTC, 10*time.Millisecond)

	var deadline bool
	s.wrap("probe", func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	})()

	assert.True(t, deadline)
}
