package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSearchOptions_Limit tests the effective result bound.
func TestSearchOptions_Limit(t *testing.T) {
	tests := []struct {
		name string
		max  int
		want int
	}{
		{"zero means ceiling", 0, ResultCeiling},
		{"negative means ceiling", -1, ResultCeiling},
		{"below ceiling kept", 250, 250},
		{"at ceiling kept", ResultCeiling, ResultCeiling},
		{"above ceiling clamped", 5000, ResultCeiling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := SearchOptions{MaxResults: tt.max}
			assert.Equal(t, tt.want, o.Limit())
		})
	}
}

// TestMirrorOptions_Workers tests worker count clamping.
func TestMirrorOptions_Workers(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		want        int
	}{
		{"zero means default", 0, DefaultConcurrency},
		{"negative means default", -3, DefaultConcurrency},
		{"in range kept", 8, 8},
		{"above cap clamped", 100, MaxConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := MirrorOptions{Concurrency: tt.concurrency}
			assert.Equal(t, tt.want, o.Workers())
		})
	}
}

// TestMirrorOptions_Root tests the destination root default.
func TestMirrorOptions_Root(t *testing.T) {
	assert.Equal(t, ".", MirrorOptions{}.Root())
	assert.Equal(t, "/srv/mirror", MirrorOptions{DestRoot: "/srv/mirror"}.Root())
}

// TestSummary_Success tests the full-success predicate.
func TestSummary_Success(t *testing.T) {
	ok := Summary{Written: 2, Skipped: 1}
	assert.True(t, ok.Success())

	bad := Summary{Written: 2, Failed: []Failure{{Match: Match{Owner: "o", Repo: "r", Path: "p"}}}}
	assert.False(t, bad.Success())
}
