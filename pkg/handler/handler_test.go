package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/model"
)

// newTestApp builds seven records r1..r7; r1 is SCEL/ABCC4.
func newTestApp(t *testing.T) *AppContext {
	t.Helper()

	records := make([]model.Record, 0, 7)
	for i := 1; i <= 7; i++ {
		records = append(records, model.Record{
			ID:             model.ObjectID{OID: fmt.Sprintf("r%d", i)},
			HostGeneName:   fmt.Sprintf("HOST%d", i),
			TargetGeneName: fmt.Sprintf("TARGET%d", i),
			HostSequence:   "AKRDE",
			TargetSequence: "AK",
			IsAnalyzed:     i%2 == 0,
		})
	}
	records[0].HostGeneName = "SCEL"
	records[0].TargetGeneName = "ABCC4"

	return NewAppContext(db.NewDataset(records, "test"), 5, 3)
}

func serve(t *testing.T, app *AppContext, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	NewRouter(app).ServeHTTP(rec, req)
	return rec
}

func TestMainPage_Pagination(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		target  string
		want    []string
		notWant []string
	}{
		{"/", []string{"SCEL", "HOST5", "1-5"}, []string{"HOST6", "HOST7"}},
		{"/?page=2", []string{"HOST6", "HOST7", "6-7"}, []string{"HOST2<", "HOST5"}},
		{"/?page=99", []string{"HOST6", "HOST7"}, []string{"HOST5"}},
		{"/?q=scel&page=2", []string{"SCEL", "1-1"}, []string{"HOST2", `class="pagination"`}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := serve(t, app, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := rec.Body.String()
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("expected %q in body", w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(body, nw) {
					t.Errorf("did not expect %q in body", nw)
				}
			}
		})
	}
}

func TestRecordsAPI(t *testing.T) {
	app := newTestApp(t)

	rec := serve(t, app, http.MethodGet, "/api/v1/records?page=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp RecordsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := resp.Payload
	if p.TotalItems != 7 || p.TotalPages != 2 || p.First != 6 || p.Last != 7 {
		t.Fatalf("unexpected page metadata: %+v", p)
	}
	if len(p.Records) != 2 || p.Records[0].ID.OID != "r6" || p.Records[1].ID.OID != "r7" {
		t.Fatalf("unexpected records: %+v", p.Records)
	}

	rec = serve(t, app, http.MethodGet, "/api/v1/records?q=+abcc4+", "")
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Payload.TotalItems != 1 || resp.Payload.Records[0].HostGeneName != "SCEL" {
		t.Fatalf("expected SCEL via target match, got %+v", resp.Payload)
	}

	rec = serve(t, app, http.MethodGet, "/api/v1/records?q=nothing", "")
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Payload.TotalItems != 0 || resp.Payload.TotalPages != 1 || resp.Payload.Records == nil {
		t.Fatalf("expected empty non-null page, got %+v", resp.Payload)
	}
}

func TestRecordAPI(t *testing.T) {
	app := newTestApp(t)

	if rec := serve(t, app, http.MethodGet, "/api/v1/records/r3", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(t, app, http.MethodGet, "/api/v1/records/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSignalAPI(t *testing.T) {
	app := newTestApp(t)

	rec := serve(t, app, http.MethodGet, "/api/v1/records/r1/signal?side=host&window=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp SignalPayload
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(resp.Points))
	}
	if resp.Points[1].Smoothed != nil {
		t.Errorf("position 2 should have no rolling mean")
	}
	if got := resp.Points[2].Smoothed; got == nil || *got != 8.78 {
		t.Errorf("expected 8.78 at position 3, got %v", got)
	}

	// Window above the slider range is clamped.
	rec = serve(t, app, http.MethodGet, "/api/v1/records/r1/signal?side=target&window=500", "")
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.WindowSize != model.MAX_WINDOW_SIZE || resp.Side != model.SideTarget {
		t.Errorf("unexpected request echo: window=%d side=%v", resp.WindowSize, resp.Side)
	}
}

func TestRecordCSVHandler(t *testing.T) {
	app := newTestApp(t)

	rec := serve(t, app, http.MethodGet, "/records/r1/csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "protein_data_SCEL_ABCC4.csv") {
		t.Errorf("unexpected disposition %q", cd)
	}
	if !strings.Contains(rec.Body.String(), `"SCEL","ABCC4","N/A"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestExportHandler(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		target string
		status int
		ctype  string
	}{
		{"csv", "/records/r1/export?window=3&format=csv", http.StatusOK, "text/csv"},
		{"png", "/records/r1/export?window=3&format=png", http.StatusOK, "image/png"},
		{"svg", "/records/r1/export?side=host&window=2&format=svg", http.StatusOK, "image/svg+xml"},
		{"unknown format", "/records/r1/export?format=gif", http.StatusBadRequest, ""},
		{"missing record", "/records/nope/export?format=csv", http.StatusNotFound, ""},
		{"window longer than sequence", "/records/r1/export?side=target&window=5&format=png", http.StatusOK, "image/png"},
		{"window longer than sequence csv", "/records/r1/export?side=target&window=5&format=csv", http.StatusOK, "text/csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, app, http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			if tt.ctype != "" && !strings.HasPrefix(rec.Header().Get("Content-Type"), tt.ctype) {
				t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestChartPage(t *testing.T) {
	app := newTestApp(t)

	rec := serve(t, app, http.MethodGet, "/records/r1/chart?side=host&window=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Errorf("expected inline svg")
	}

	// Window longer than the sequence: empty chart, every position N/A.
	rec = serve(t, app, http.MethodGet, "/records/r1/chart?side=target&window=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Errorf("expected an empty chart")
	}
	if strings.Contains(rec.Body.String(), "Failed to render chart") {
		t.Errorf("chart should not fail")
	}
}

func TestBlastPRedirectPage(t *testing.T) {
	app := newTestApp(t)

	rec := serve(t, app, http.MethodGet, "/records/r1/blastp?side=host", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Query().Get("PROGRAM") != "blastp" || loc.Query().Get("QUERY") != "AKRDE" {
		t.Errorf("unexpected redirect %s", loc)
	}
}

func TestExportJobLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec := serve(t, app, http.MethodPost, "/api/v1/exports", "id=r1&side=host&window=3&format=csv")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var submitted SubmitExportResponse
	if err := json.NewDecoder(rec.Body).Decode(&submitted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if submitted.JobID == "" {
		t.Fatalf("missing job id")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	job, err := app.Exports.Wait(ctx, submitted.JobID)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if job.Status != ExportJobCompleted {
		t.Fatalf("expected completed, got %s (%s)", job.Status, job.Error)
	}

	rec = serve(t, app, http.MethodGet, "/api/v1/exports/"+submitted.JobID, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"completed"`) {
		t.Fatalf("unexpected status response %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(t, app, http.MethodGet, "/exports/"+submitted.JobID, "")
	if !strings.Contains(rec.Body.String(), "/exports/"+submitted.JobID+"/download") {
		t.Errorf("job page should link the download")
	}

	rec = serve(t, app, http.MethodGet, "/exports/"+submitted.JobID+"/download", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "SCEL-ABCC4-3-pvalue-analysis.csv") {
		t.Errorf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
	if !strings.HasPrefix(rec.Body.String(), "Position,Amino Acid,Raw P-Value,Rolling Mean (Window Size: 3)\n") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestExportJobErrors(t *testing.T) {
	app := newTestApp(t)

	if rec := serve(t, app, http.MethodPost, "/api/v1/exports", "id=r1&format=bmp"); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if rec := serve(t, app, http.MethodPost, "/api/v1/exports", "id=nope&format=csv"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := serve(t, app, http.MethodGet, "/api/v1/exports/unknown", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec := serve(t, app, http.MethodGet, "/exports/unknown/download", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	rec := serve(t, app, http.MethodGet, "/api/v1/health", "")
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Health != "ok" || resp.Records != 7 {
		t.Fatalf("unexpected health %+v", resp)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("expected request id header")
	}
}
