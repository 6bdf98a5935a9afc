package model

import (
	"strings"
	"testing"
)

func TestFilterRecords_BlankQueryIsIdentity(t *testing.T) {
	records := sampleRecords(7)

	for _, q := range []string{"", " ", "\t\n  "} {
		got := FilterRecords(records, q)
		if len(got) != len(records) {
			t.Fatalf("query %q: expected %d records, got %d", q, len(records), len(got))
		}
		for i := range got {
			if got[i].ID != records[i].ID {
				t.Fatalf("query %q: order changed at %d", q, i)
			}
		}
	}
}

func TestFilterRecords_CaseInsensitiveExactMatch(t *testing.T) {
	records := []Record{
		{HostGeneName: "ABCC4", TargetGeneName: "TP53"},
		{HostGeneName: "SCEL", TargetGeneName: "ABCC4"},
		{HostGeneName: "SCELX", TargetGeneName: "MYC"},
	}

	for _, q := range []string{"SCEL", "scel", "ScEl", "  scel  "} {
		got := FilterRecords(records, q)
		if len(got) != 1 {
			t.Fatalf("query %q: expected 1 record, got %d", q, len(got))
		}
		if got[0].HostGeneName != "SCEL" {
			t.Fatalf("query %q: unexpected record %+v", q, got[0])
		}
	}
}

func TestFilterRecords_MatchesEitherIdentityField(t *testing.T) {
	records := []Record{
		{HostGeneName: "ABCC4", TargetGeneName: "TP53"},
		{HostGeneName: "SCEL", TargetGeneName: "ABCC4"},
		{HostGeneName: "MYC", TargetGeneName: "abcc4"},
		{HostGeneName: "MYC", TargetGeneName: "TP53"},
	}

	got := FilterRecords(records, "abcc4")
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}

	// Every kept record matches, every dropped record fails both fields.
	q := "ABCC4"
	kept := map[int]bool{}
	for _, r := range got {
		if strings.ToUpper(r.HostGeneName) != q && strings.ToUpper(r.TargetGeneName) != q {
			t.Fatalf("record %+v should not match", r)
		}
	}
	for i, r := range records {
		for _, g := range got {
			if g == r {
				kept[i] = true
			}
		}
	}
	if kept[3] {
		t.Fatalf("record without ABCC4 was kept")
	}
	if got[0].HostGeneName != "ABCC4" || got[2].HostGeneName != "MYC" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestFilterRecords_NoSubstringMatch(t *testing.T) {
	records := []Record{{HostGeneName: "SCEL", TargetGeneName: "ABCC4"}}

	got := FilterRecords(records, "SCE")
	if got == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}
