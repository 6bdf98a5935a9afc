package request

import (
	"errors"
	"net/url"
	"testing"

	"github.com/yumyai/protview/pkg/export"
	"github.com/yumyai/protview/pkg/model"
)

func TestParseBrowse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want BrowseRequest
	}{
		{"defaults", "", BrowseRequest{Query: "", Page: 1, Page_Size: 5}},
		{"query and page", "q=+scel+&page=3", BrowseRequest{Query: "scel", Page: 3, Page_Size: 5}},
		{"bad page", "page=-2&page_size=abc", BrowseRequest{Page: 1, Page_Size: 5}},
		{"page size capped", "page_size=5000", BrowseRequest{Page: 1, Page_Size: MaxPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.raw)
			if got := ParseBrowse(q, 5); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseSignal(t *testing.T) {
	q, _ := url.ParseQuery("side=target&window=50")
	got := ParseSignal("abc", q, 5)

	if got.Record_ID != "abc" || got.Side != model.SideTarget || got.Window_Size != model.MAX_WINDOW_SIZE {
		t.Fatalf("unexpected request %+v", got)
	}

	got = ParseSignal("abc", url.Values{}, 5)
	if got.Side != model.SideHost || got.Window_Size != 5 {
		t.Fatalf("unexpected defaults %+v", got)
	}
}

func TestParseExport(t *testing.T) {
	q, _ := url.ParseQuery("format=svg&window=3")
	got, err := ParseExport("abc", q, 5)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Format != export.FormatSVG || got.Window_Size != 3 {
		t.Fatalf("unexpected request %+v", got)
	}

	q, _ = url.ParseQuery("format=bmp")
	if _, err := ParseExport("abc", q, 5); !errors.Is(err, export.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
