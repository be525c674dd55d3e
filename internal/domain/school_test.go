package domain

import "testing"

func fp(v float64) *float64 { return &v }

func TestEffectiveTuition(t *testing.T) {
	cases := []struct {
		name string
		s    School
		want float64
	}{
		{"in-state wins", School{TuitionInState: fp(60000), TuitionOutOfState: fp(110000)}, 60000},
		{"out-of-state fallback", School{TuitionOutOfState: fp(110000)}, 110000},
		{"nothing known", School{}, 0},
	}
	for _, tc := range cases {
		if got := tc.s.EffectiveTuition(); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestGREWaivable(t *testing.T) {
	w := "3.5 GPA"
	if (School{GRERequired: true}).GREWaivable() {
		t.Error("no waiver path should not be waivable")
	}
	if !(School{GRERequired: true, GREWaiver: &w}).GREWaivable() {
		t.Error("waiver path should be waivable")
	}
}

func TestRequirementFlag(t *testing.T) {
	s := School{GRERequired: true, RequiresCCRN: true, RequiresBiochem: true}

	for key, want := range map[string]bool{
		"gre": true, "ccrn": true, "biochem": true,
		"shadowing": false, "organic_chem": false, "statistics": false, "physics": false,
	} {
		v, ok := s.RequirementFlag(key)
		if !ok {
			t.Errorf("key %q should be mapped", key)
		}
		if v != want {
			t.Errorf("key %q = %v, want %v", key, v, want)
		}
	}

	if _, ok := s.RequirementFlag("genetics"); ok {
		t.Error("unmapped key must report ok=false")
	}
	if _, ok := s.RequirementFlag(""); ok {
		t.Error("empty key must report ok=false")
	}
}

func TestPrereqKeysAllMapped(t *testing.T) {
	for _, k := range PrereqKeys {
		if _, ok := (School{}).RequirementFlag(k); !ok {
			t.Errorf("prereq key %q is not mapped", k)
		}
	}
}
