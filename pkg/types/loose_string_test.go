package types

import (
	"encoding/json"
	"testing"
)

func TestLooseStringUnmarshal(t *testing.T) {
	var payload struct {
		ERPId     LooseString `json:"ERPId"`
		CompanyID LooseString `json:"companyId"`
		Missing   LooseString `json:"missing"`
	}

	if err := json.Unmarshal([]byte(`{"ERPId":" erp-7 ","companyId":12,"missing":null}`), &payload); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}

	if payload.ERPId != " erp-7 " {
		t.Fatalf("expected string kept as sent, got %q", payload.ERPId)
	}
	if payload.CompanyID != "12" {
		t.Fatalf("expected numeric text, got %q", payload.CompanyID)
	}
	if !payload.Missing.IsZero() {
		t.Fatalf("expected null to be zero")
	}

	id, err := payload.CompanyID.Int64()
	if err != nil || id != 12 {
		t.Fatalf("expected id 12, got %d err=%v", id, err)
	}
}

func TestLooseStringRejectsObjects(t *testing.T) {
	var v LooseString
	if err := json.Unmarshal([]byte(`{"a":1}`), &v); err == nil {
		t.Fatal("expected object to be rejected")
	}
}

func TestLooseStringInt64RejectsText(t *testing.T) {
	if _, err := LooseString("abc").Int64(); err == nil {
		t.Fatal("expected non numeric identifier to fail")
	}
}

func TestLooseStringBlankIsZero(t *testing.T) {
	var v LooseString
	if err := json.Unmarshal([]byte(`" \t "`), &v); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if !v.IsZero() {
		t.Fatalf("expected blank text to be zero, got %q", v)
	}
	if v.String() != " \t " {
		t.Fatalf("expected raw text kept, got %q", v.String())
	}
}

func TestLooseStringInt64TrimsWhitespace(t *testing.T) {
	id, err := LooseString(" 7 ").Int64()
	if err != nil || id != 7 {
		t.Fatalf("expected id 7, got %d err=%v", id, err)
	}
}
