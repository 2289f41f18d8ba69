package age

import (
	"testing"
	"time"
)

func TestElapsed(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-10 * time.Minute)
	finished := start.Add(3 * time.Minute)
	futureStart := now.Add(4 * time.Minute)
	pastFinished := now.Add(-2 * time.Minute)

	cases := []struct {
		name       string
		startedAt  time.Time
		finishedAt time.Time
		active     bool
		want       time.Duration
		ok         bool
	}{
		{
			name:      "active uses now",
			startedAt: start,
			active:    true,
			want:      10 * time.Minute,
			ok:        true,
		},
		{
			name:      "active zero duration",
			startedAt: now,
			active:    true,
			want:      0,
			ok:        true,
		},
		{
			name:      "active clamps future",
			startedAt: futureStart,
			active:    true,
			want:      0,
			ok:        true,
		},
		{
			name:       "finished uses timestamps",
			startedAt:  start,
			finishedAt: finished,
			want:       3 * time.Minute,
			ok:         true,
		},
		{
			name:       "finished clamps negative",
			startedAt:  now,
			finishedAt: pastFinished,
			want:       0,
			ok:         true,
		},
		{
			name:   "missing start",
			active: true,
			want:   0,
			ok:     false,
		},
		{
			name:      "finished missing finish time",
			startedAt: start,
			want:      0,
			ok:        false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Elapsed(tc.startedAt, tc.finishedAt, tc.active, now)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		then time.Time
		want time.Duration
		ok   bool
	}{
		{name: "past", then: now.Add(-4 * time.Minute), want: 4 * time.Minute, ok: true},
		{name: "clamps future", then: now.Add(2 * time.Minute), want: 0, ok: true},
		{name: "missing", then: time.Time{}, want: 0, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Since(tc.then, now)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestUntil(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		deadline time.Time
		want     time.Duration
		ok       bool
	}{
		{name: "ahead", deadline: now.Add(90 * time.Minute), want: 90 * time.Minute, ok: true},
		{name: "passed is negative", deadline: now.Add(-time.Hour), want: -time.Hour, ok: true},
		{name: "missing", deadline: time.Time{}, want: 0, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Until(tc.deadline, now)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("expected %s/%t, got %s/%t", tc.want, tc.ok, got, ok)
			}
		})
	}
}
