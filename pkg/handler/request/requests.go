package request

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/yumyai/protview/pkg/export"
	"github.com/yumyai/protview/pkg/model"
)

// Browse listing, built from ?q=&page=&page_size=
type BrowseRequest struct {
	Query     string `json:"q"`
	Page      int    `json:"page"`      // Page number for pagination (starting at 1)
	Page_Size int    `json:"page_size"` // Number of records per page
}

// Signal of one side of one record
type SignalRequest struct {
	Record_ID   string     `json:"id"`
	Side        model.Side `json:"side"`
	Window_Size int        `json:"window"`
}

// Download of a signal analysis, sync or as a job
type ExportRequest struct {
	SignalRequest
	Format export.Format `json:"format"`
}

func ParsePositiveIntFallback(v string, fallback int) int {
	num, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

func ParseBrowse(q url.Values, defaultPageSize int) BrowseRequest {
	pageSize := ParsePositiveIntFallback(q.Get("page_size"), defaultPageSize)
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return BrowseRequest{
		Query:     strings.TrimSpace(q.Get("q")),
		Page:      ParsePositiveIntFallback(q.Get("page"), 1),
		Page_Size: pageSize,
	}
}

// ParseSignal reads side and window; the record id comes from the path.
func ParseSignal(id string, q url.Values, defaultWindow int) SignalRequest {
	window := ParsePositiveIntFallback(q.Get("window"), defaultWindow)

	return SignalRequest{
		Record_ID:   id,
		Side:        model.ParseSide(q.Get("side")),
		Window_Size: model.ClampWindow(window),
	}
}

func ParseExport(id string, q url.Values, defaultWindow int) (ExportRequest, error) {
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		return ExportRequest{}, err
	}
	return ExportRequest{
		SignalRequest: ParseSignal(id, q, defaultWindow),
		Format:        format,
	}, nil
}
