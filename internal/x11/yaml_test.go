package x11_test

import (
	"testing"

	"cardinal/internal/x11"

	"gopkg.in/yaml.v2"
)

func TestKeyUnmarshalYAML(t *testing.T) {
	cases := []struct {
		in   string
		want x11.Key
	}{
		{"r", x11.Key{Code: x11.KeyR}},
		{"ctrl-r", x11.Key{Code: x11.KeyR, Mod: x11.ModCtrl}},
		{"ctrl-shift-f1", x11.Key{Code: x11.KeyF1, Mod: x11.ModCtrl | x11.ModShift}},
		{"code104", x11.Key{Code: x11.KeyEnter}},
	}
	for _, tc := range cases {
		var key x11.Key
		if err := yaml.Unmarshal([]byte(tc.in), &key); err != nil {
			t.Fatalf("%q: %s", tc.in, err)
		}
		if key != tc.want {
			t.Errorf("%q: got %+v, want %+v", tc.in, key, tc.want)
		}
	}
}

func TestKeyUnmarshalYAMLInvalid(t *testing.T) {
	for _, in := range []string{"bogus", "ctrl-bogus", "code9000"} {
		var key x11.Key
		if err := yaml.Unmarshal([]byte(in), &key); err == nil {
			t.Errorf("%q: expected error, got %+v", in, key)
		}
	}
}

func TestKeyMarshalRoundTrip(t *testing.T) {
	keys := []x11.Key{
		{Code: x11.KeyQ},
		{Code: x11.KeyTab, Mod: x11.Mod1},
		{Code: x11.KeyF12, Mod: x11.ModCtrl | x11.ModShift},
	}
	for _, key := range keys {
		out, err := yaml.Marshal(key)
		if err != nil {
			t.Fatal(err)
		}
		var back x11.Key
		if err := yaml.Unmarshal(out, &back); err != nil {
			t.Fatal(err)
		}
		if back != key {
			t.Errorf("round trip: got %+v, want %+v (via %q)", back, key, out)
		}
	}
}

func TestKeymodUnmarshalYAML(t *testing.T) {
	var mod x11.Keymod
	if err := yaml.Unmarshal([]byte("ctrl-shift"), &mod); err != nil {
		t.Fatal(err)
	}
	if mod != x11.ModCtrl|x11.ModShift {
		t.Errorf("got %v, want ctrl-shift", mod)
	}
}
