package resolver_test

import (
	"reflect"
	"testing"

	"streamsift/internal/library"
	"streamsift/internal/resolver"
)

func TestParseMode(t *testing.T) {
	for input, want := range map[string]resolver.Mode{
		"":          resolver.ModeAuto,
		"auto":      resolver.ModeAuto,
		"refresh":   resolver.ModeRefresh,
		"use_saved": resolver.ModeUseSaved,
	} {
		got, err := resolver.ParseMode(input)
		if err != nil {
			t.Errorf("ParseMode(%q): %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := resolver.ParseMode("aggressive"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestBuildPlan(t *testing.T) {
	meta := library.NewMeta("films.csv")
	meta.Regions["GB"] = "2026-08-30"

	cases := []struct {
		name        string
		mode        resolver.Mode
		newUpload   bool
		wantRefresh []string
		wantCached  []string
	}{
		{"new upload refreshes everything", resolver.ModeUseSaved, true, []string{"GB", "US"}, nil},
		{"auto refreshes only undated regions", resolver.ModeAuto, false, []string{"US"}, []string{"GB"}},
		{"use_saved reuses dated regions", resolver.ModeUseSaved, false, []string{"US"}, []string{"GB"}},
		{"refresh forces every region", resolver.ModeRefresh, false, []string{"GB", "US"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := resolver.BuildPlan(meta, []string{"GB", "US"}, tc.mode, tc.newUpload)
			if !reflect.DeepEqual(plan.Refresh, tc.wantRefresh) {
				t.Errorf("Refresh = %v, want %v", plan.Refresh, tc.wantRefresh)
			}
			if !reflect.DeepEqual(plan.Cached, tc.wantCached) {
				t.Errorf("Cached = %v, want %v", plan.Cached, tc.wantCached)
			}
		})
	}
}

func TestBuildPlanPreservesRequestOrder(t *testing.T) {
	plan := resolver.BuildPlan(library.NewMeta("films.csv"), []string{"US", "GB", "DE"}, resolver.ModeAuto, false)
	if !reflect.DeepEqual(plan.Refresh, []string{"US", "GB", "DE"}) {
		t.Errorf("Refresh = %v, want request order", plan.Refresh)
	}
}
