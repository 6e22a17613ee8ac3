package uitest

import (
	"errors"
	"testing"

	"github.com/sentact/uitest/internal/fakedriver"
)

func TestParseDriverVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "114.0.5735.90 (386bc09e8f4f2e025eddae123f36f6263096ae49-refs/branch-heads/5735@{#1052})", want: "114.0.5735"},
		{in: "2.46.628388 (4a34a70827ac54148e092aafb70504c4ea7ae926)", want: "2.46.628388"},
		{in: "76.0", want: "76.0.0"},
		{in: "", wantErr: true},
		{in: "unknown", wantErr: true},
	}
	for _, test := range tests {
		v, err := parseDriverVersion(test.in)
		if test.wantErr {
			if err == nil {
				t.Errorf("parseDriverVersion(%q) = %v, want error", test.in, v)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDriverVersion(%q) returned error: %v", test.in, err)
			continue
		}
		if got := v.String(); got != test.want {
			t.Errorf("parseDriverVersion(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestCheckDriverVersion(t *testing.T) {
	wd := fakedriver.New(nil)
	if err := checkDriverVersion(wd); err != nil {
		t.Errorf("checkDriverVersion(%q) returned error: %v", wd.Build, err)
	}

	wd.Build = "2.46.628388 (4a34a70827ac54148e092aafb70504c4ea7ae926)"
	if err := checkDriverVersion(wd); err == nil {
		t.Errorf("checkDriverVersion(%q) did not return an error", wd.Build)
	}

	wd.Build = "development build"
	if err := checkDriverVersion(wd); err != nil {
		t.Errorf("checkDriverVersion(%q) returned error: %v", wd.Build, err)
	}

	wd.StatusErr = errors.New("status not supported")
	if err := checkDriverVersion(wd); err != nil {
		t.Errorf("checkDriverVersion() with a failing status returned error: %v", err)
	}
}
