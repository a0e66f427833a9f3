package update

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tools.zach/dev/hexbot"
)

// ///////////////////////////////////////////////
// parseSemver Tests
// ///////////////////////////////////////////////

func TestParseSemver(t *testing.T) {
	tests := []struct {
		input   string
		want    [3]int
		wantPre bool
		wantOK  bool
	}{
		{"1.2.3", [3]int{1, 2, 3}, false, true},
		{"v1.2.3", [3]int{1, 2, 3}, false, true},
		{"0.0.0-dev", [3]int{0, 0, 0}, true, true},
		{"1.0.0-beta+build123", [3]int{1, 0, 0}, true, true},
		{"10.20.30", [3]int{10, 20, 30}, false, true},
		{"1.2.3-rc.1", [3]int{1, 2, 3}, true, true},
		{"1.2.3+metadata", [3]int{1, 2, 3}, false, true},

		{"", [3]int{}, false, false},
		{"1.2", [3]int{}, false, false},
		{"v", [3]int{}, false, false},
		{"1.2.x", [3]int{}, false, false},
		{"1.2.3.4", [3]int{}, false, false},
		{"1..3", [3]int{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, pre, ok := parseSemver(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseSemver(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want || pre != tt.wantPre {
				t.Errorf("parseSemver(%q) = %v, %v; want %v, %v", tt.input, got, pre, tt.want, tt.wantPre)
			}
		})
	}
}

// ///////////////////////////////////////////////
// semverLess Tests
// ///////////////////////////////////////////////

func TestSemverLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.2.3", "1.2.3", false},
		{"0.9.9", "1.0.0", true},
		{"2.0.0", "1.9.9", false},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "1.0.1", true},
		{"v0.1.0", "v0.2.0", true},
		{"0.1.0", "v0.2.0", true},
		{"1.0.0-alpha", "1.0.0-beta", false},
		{"0.1.0-dev", "0.1.0", true},
		{"0.1.0", "0.1.0-dev", false},
		{"invalid", "1.0.0", false},
		{"1.0.0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"<"+tt.b, func(t *testing.T) {
			if got := semverLess(tt.a, tt.b); got != tt.want {
				t.Errorf("semverLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Check Tests (via httptest mock)
// ///////////////////////////////////////////////

func manifestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckNewerVersionAvailable(t *testing.T) {
	srv := manifestServer(t, http.StatusOK, `{".": "1.2.0"}`)
	c := Checker{Transport: hexbot.DefaultTransport(), URL: srv.URL}

	res, err := c.Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.Newer || res.Latest != "1.2.0" {
		t.Errorf("Check = %+v, want newer 1.2.0", res)
	}
}

func TestCheckSameVersion(t *testing.T) {
	srv := manifestServer(t, http.StatusOK, `{".": "1.0.0"}`)
	c := Checker{Transport: hexbot.DefaultTransport(), URL: srv.URL}

	res, err := c.Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Newer {
		t.Errorf("Check = %+v, want not newer", res)
	}
}

func TestCheckNoURL(t *testing.T) {
	_, err := Checker{Transport: hexbot.DefaultTransport()}.Check(context.Background(), "1.0.0")
	if !errors.Is(err, ErrNoManifest) {
		t.Errorf("err = %v, want ErrNoManifest", err)
	}
}

func TestCheckNon200(t *testing.T) {
	srv := manifestServer(t, http.StatusInternalServerError, ``)
	c := Checker{Transport: hexbot.DefaultTransport(), URL: srv.URL}

	_, err := c.Check(context.Background(), "1.0.0")
	var se *hexbot.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *hexbot.StatusError", err)
	}
}

func TestCheckInvalidJSON(t *testing.T) {
	srv := manifestServer(t, http.StatusOK, `not json`)
	c := Checker{Transport: hexbot.DefaultTransport(), URL: srv.URL}

	if _, err := c.Check(context.Background(), "1.0.0"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

// ///////////////////////////////////////////////
// ParseManifest Tests
// ///////////////////////////////////////////////

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{name: "root entry", data: `{".": "1.4.0", "tools/x": "0.2.0"}`, want: "1.4.0"},
		{name: "no root entry", data: `{"tools/x": "0.2.0"}`, want: ""},
		{name: "empty object", data: `{}`, want: ""},
		{name: "malformed", data: `{".": 1}`, wantErr: true},
		{name: "not json", data: `1.4.0`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseManifest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseManifest() = %q, want %q", got, tt.want)
			}
		})
	}
}
