package schedule

import "testing"

func TestClassifyService(t *testing.T) {
	cases := []struct {
		text string
		want ServiceType
	}{
		{"Recycling", ServiceRecycling},
		{"RECYCLING", ServiceRecycling},
		{"Mixed recycling collection", ServiceRecycling},
		{"Refuse", ServiceRefuse},
		{"General waste", ServiceRefuse},
		{"", ServiceRefuse},
		{"???", ServiceRefuse},
	}
	for _, c := range cases {
		if got := ClassifyService(c.text); got != c.want {
			t.Errorf("ClassifyService(%q) = %q, want %q", c.text, got, c.want)
		}
	}
}
