package diag

import (
	"testing"

	"scriptrust/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if b.HasErrors() {
		t.Error("empty bag should have no errors")
	}
	if !b.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownDecorationKeyword}) {
		t.Error("first Add should succeed")
	}
	if !b.Add(Diagnostic{Severity: SevError, Code: LexUnknownChar}) {
		t.Error("second Add should succeed")
	}
	if b.Add(Diagnostic{Severity: SevError, Code: LexBadNumber}) {
		t.Error("Add past the limit should fail")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("bag should report errors and warnings")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	sp := func(start uint32) source.Span { return source.Span{File: 0, Start: start, End: start + 1} }
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(9)})
	b.Add(Diagnostic{Severity: SevError, Code: LexUnknownChar, Primary: sp(3)})
	b.Add(Diagnostic{Severity: SevError, Code: LexUnknownChar, Primary: sp(3)})
	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("after Dedup: %d items, want 2", len(items))
	}
	if items[0].Primary.Start != 3 || items[1].Primary.Start != 9 {
		t.Errorf("sort order wrong: %v", items)
	}
}

func TestCodeStrings(t *testing.T) {
	if LexUnknownChar.String() != "SR1001" {
		t.Errorf("String() = %q", LexUnknownChar.String())
	}
	if LexUnknownChar.ID() != "LEX_UNKNOWN_CHAR" {
		t.Errorf("ID() = %q", LexUnknownChar.ID())
	}
	if Code(1234).ID() != "CODE_1234" {
		t.Errorf("unknown ID() = %q", Code(1234).ID())
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(4)
	var r Reporter = &BagReporter{Bag: b}
	r.Report(SynExpectExpression, SevError, source.Span{}, "expected expression", nil)
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if b.Items()[0].Message != "expected expression" {
		t.Errorf("message = %q", b.Items()[0].Message)
	}
	NopReporter{}.Report(SynExpectExpression, SevError, source.Span{}, "x", nil)
}
