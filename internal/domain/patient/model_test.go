package patient

import "testing"

func strPtr(s string) *string { return &s }

func TestPatient_Validate(t *testing.T) {
	p := Patient{Name: "Ana", HealthCardNumber: "123", Address: "Rua X"}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid patient, got %v", err)
	}
}

func TestPatient_Validate_MissingFields(t *testing.T) {
	cases := map[string]Patient{
		"missing name":    {HealthCardNumber: "123", Address: "Rua X"},
		"missing card":    {Name: "Ana", Address: "Rua X"},
		"missing address": {Name: "Ana", HealthCardNumber: "123"},
	}
	for name, p := range cases {
		if err := p.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestPatch_Apply(t *testing.T) {
	p := Patient{ID: 1, Name: "Ana", HealthCardNumber: "123", Address: "Rua X"}
	Patch{Name: strPtr("Beatriz")}.Apply(&p)

	if p.Name != "Beatriz" {
		t.Errorf("expected name updated, got %q", p.Name)
	}
	if p.HealthCardNumber != "123" || p.Address != "Rua X" {
		t.Errorf("absent fields should stay untouched: %+v", p)
	}
}

func TestPatch_Apply_EmptyValuesIgnored(t *testing.T) {
	p := Patient{ID: 1, Name: "Ana", HealthCardNumber: "123", Address: "Rua X"}
	Patch{Name: strPtr(""), Address: strPtr("")}.Apply(&p)

	if p.Name != "Ana" || p.Address != "Rua X" {
		t.Errorf("empty values must not clear fields: %+v", p)
	}
}

func TestPatch_Apply_Empty(t *testing.T) {
	p := Patient{ID: 1, Name: "Ana", HealthCardNumber: "123", Address: "Rua X"}
	before := p
	Patch{}.Apply(&p)

	if p != before {
		t.Errorf("empty patch must be a no-op: %+v", p)
	}
}
