package service

import (
	"testing"

	"edulure_backend/internal/search/repository"
)

type staticAppConfig string

func (s staticAppConfig) GetAppBaseURL() string { return string(s) }

func TestBuildFrontendLink(t *testing.T) {
	svc := New(nil, staticAppConfig("https://app.edulure.test/"))

	cases := []struct {
		hit  repository.Hit
		want string
	}{
		{hit: repository.Hit{Kind: "order", ID: "42"}, want: "https://app.edulure.test/field-services/orders/42"},
		{hit: repository.Hit{Kind: "ticket", ID: "abc"}, want: "https://app.edulure.test/support/tickets/abc"},
		{hit: repository.Hit{Kind: "experiment", ID: "x"}, want: "https://app.edulure.test/admin/experiments/x"},
		{hit: repository.Hit{Kind: "unknown", ID: "1"}, want: "https://app.edulure.test"},
	}

	for _, tc := range cases {
		if got := svc.buildFrontendLink(tc.hit); got != tc.want {
			t.Fatalf("buildFrontendLink(%q) = %q, want %q", tc.hit.Kind, got, tc.want)
		}
	}
}
