package mapping

import "testing"

func TestExternalID_TaggedUnion(t *testing.T) {
	t.Parallel()

	num := Numeric(57)
	if v, ok := num.Int64(); !ok || v != 57 {
		t.Fatalf("unexpected numeric value: v=%d ok=%v", v, ok)
	}
	if _, ok := num.Text(); ok {
		t.Fatalf("numeric id must not expose a text value")
	}

	txt := Text("FINISHED")
	if v, ok := txt.Text(); !ok || v != "FINISHED" {
		t.Fatalf("unexpected text value: v=%s ok=%v", v, ok)
	}
	if _, ok := txt.Int64(); ok {
		t.Fatalf("text id must not expose a numeric value")
	}

	var zero ExternalID
	if zero.Kind() == IDKindNumeric || zero.Kind() == IDKindText {
		t.Fatalf("zero external id must have no valid kind")
	}
}

func TestMapping_Validate(t *testing.T) {
	t.Parallel()

	if err := (Mapping{Entity: EntityTeam, ExternalID: Numeric(1)}).Validate(); err != nil {
		t.Fatalf("expected valid mapping: %v", err)
	}
	if err := (Mapping{Entity: "player", ExternalID: Numeric(1)}).Validate(); err == nil {
		t.Fatalf("expected unknown entity error")
	}
	if err := (Mapping{Entity: EntityTeam}).Validate(); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
