package types

import "testing"

func TestLookupKnownHostKinds(t *testing.T) {
	cases := map[HostKind]Descriptor{
		"int":     Number,
		"float64": Number,
		"string":  String,
		"bool":    Boolean,
		"any":     Any,
	}
	for kind, want := range cases {
		got, ok := Lookup(kind)
		if !ok {
			t.Errorf("Lookup(%q): expected ok, got not found", kind)
			continue
		}
		if got != want {
			t.Errorf("Lookup(%q) = %s, want %s", kind, got, want)
		}
	}
}

func TestLookupUnknownHostKind(t *testing.T) {
	if _, ok := Lookup("unknown_kind"); ok {
		t.Error("expected Lookup to report not found for an unknown kind")
	}
}

func TestAllReturnsFourBuiltins(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("expected 4 built-in descriptors, got %d", len(all))
	}
	for _, d := range all {
		if !IsBuiltin(d) {
			t.Errorf("%s should be reported builtin", d)
		}
	}
}

func TestUndefinedIsNotBuiltin(t *testing.T) {
	if IsBuiltin(Undefined) {
		t.Error("Undefined must not be reported as a builtin descriptor")
	}
}
