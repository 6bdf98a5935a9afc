package handler

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/export"
	"github.com/yumyai/protview/pkg/handler/request"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/render"
	"go.uber.org/zap"
)

const blastBaseURL = "https://blast.ncbi.nlm.nih.gov/Blast.cgi"

type SignalPayload struct {
	ID         string              `json:"id"`
	HostGene   string              `json:"hgene_name"`
	TargetGene string              `json:"tgene_name"`
	Side       model.Side          `json:"side"`
	WindowSize int                 `json:"window"`
	Points     []model.SignalPoint `json:"points"`
}

func (app *AppContext) SignalAPI(w http.ResponseWriter, r *http.Request) {
	req := request.ParseSignal(r.PathValue("id"), r.URL.Query(), app.DefaultWindow)

	rec, err := app.Dataset.Get(req.Record_ID)
	if err != nil {
		writeJSONError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SignalPayload{
		ID:         req.Record_ID,
		HostGene:   rec.HostGeneName,
		TargetGene: rec.TargetGeneName,
		Side:       req.Side,
		WindowSize: req.Window_Size,
		Points:     model.BuildSignal(rec.Sequence(req.Side), req.Window_Size),
	})
}

// ChartPage shows the p-value analysis of one sequence with its SVG chart.
func (app *AppContext) ChartPage(w http.ResponseWriter, r *http.Request) {
	req := request.ParseSignal(r.PathValue("id"), r.URL.Query(), app.DefaultWindow)

	rec, err := app.Dataset.Get(req.Record_ID)
	if err != nil {
		writeHTTPError(w, r, err)
		return
	}

	logger.Info("Running chartpage",
		zap.String("id", req.Record_ID),
		zap.Stringer("side", req.Side),
		zap.Int("window", req.Window_Size),
	)

	points := model.BuildSignal(rec.Sequence(req.Side), req.Window_Size)
	data := render.ChartPageData{
		Record:     rec,
		Side:       req.Side,
		WindowSize: req.Window_Size,
		Points:     points,
	}

	payload, err := export.RenderChart(r.Context(), export.ChartRequest{
		HostGene:   rec.HostGeneName,
		TargetGene: rec.TargetGeneName,
		Title:      req.Side.Title() + " P-Value Analysis",
		WindowSize: req.Window_Size,
		Points:     points,
		Format:     export.FormatSVG,
	})
	if err != nil {
		logger.Error("Failed to render chart", zap.String("id", req.Record_ID), zap.Error(err))
		data.ChartError = "Failed to render chart."
	} else {
		// go-chart output, not user input.
		data.ChartSVG = template.HTML(payload.Data)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderChartPage(w, data); err != nil {
		logger.Error("Failed to render chart page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// BlastPRedirectPage sends the selected protein sequence to NCBI BLASTP.
func (app *AppContext) BlastPRedirectPage(w http.ResponseWriter, r *http.Request) {
	rec, err := app.Dataset.Get(r.PathValue("id"))
	if err != nil {
		writeHTTPError(w, r, err)
		return
	}

	seq := rec.Sequence(model.ParseSide(r.URL.Query().Get(request.FieldSide)))
	if seq == "" {
		http.Error(w, "No sequence available", http.StatusBadRequest)
		return
	}

	params := url.Values{}
	params.Add("PROGRAM", "blastp")
	params.Add("PAGE_TYPE", "BlastSearch")
	params.Add("QUERY", seq)
	blastURL := blastBaseURL + "?" + params.Encode()

	// Redirect the user to the BLAST URL
	http.Redirect(w, r, blastURL, http.StatusFound)
}
