package apiclient

import "testing"

func TestBuildURL(t *testing.T) {
	cases := []struct {
		name string
		q    Query
		want string
	}{
		{name: "empty", q: Query{}, want: "/api/reservations"},
		{name: "space as plus", q: NewQuery("a", "1", "b", "x y"), want: "/api/reservations?a=1&b=x+y"},
		{name: "reserved bytes", q: NewQuery("email", "a+b@x.com", "note", "*-._~"), want: "/api/reservations?email=a%2Bb%40x.com&note=*-._%7E"},
		{name: "utf8", q: NewQuery("name", "テスト"), want: "/api/reservations?name=%E3%83%86%E3%82%B9%E3%83%88"},
		{name: "non string values", q: NewQuery("seats", 2, "ok", true, "x", nil), want: "/api/reservations?seats=2&ok=true&x=null"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildURL("/api/reservations", tc.q); got != tc.want {
				t.Fatalf("BuildURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestQuerySetKeepsPosition(t *testing.T) {
	q := NewQuery("a", "1", "b", "2")
	q.Set("a", "3")
	if got := q.Encode(); got != "a=3&b=2" {
		t.Fatalf("Encode = %q", got)
	}
	if q.Len() != 2 {
		t.Fatalf("Len = %d", q.Len())
	}
}
