package util_test

import (
	"testing"
	"time"

	util "github.com/saulo-duarte/classroom-lambda/internal/utils"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3*time.Hour + 20*time.Minute, "3h ago"},
		{49 * time.Hour, "2d ago"},
		{10 * 24 * time.Hour, "Feb 28, 2025"},
	}
	for _, tc := range cases {
		if got := util.TimeAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Ana Souza":         "AS",
		"maria clara lopes": "MC",
		"Student":           "ST",
		"x":                 "X",
		"élio":              "ÉL",
		"  ":                "",
		"élio ramos":        "ÉR",
	}
	for in, want := range cases {
		if got := util.Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}
