package handler

import (
	"net/http"

	"github.com/yumyai/protview/logger"
	"github.com/yumyai/protview/pkg/handler/request"
	"github.com/yumyai/protview/pkg/model"
	"github.com/yumyai/protview/pkg/render"
	"go.uber.org/zap"
)

type RecordsPayload struct {
	Records    []model.Record `json:"records"`
	Query      string         `json:"q"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	TotalItems int            `json:"total_items"`
	First      int            `json:"first"`
	Last       int            `json:"last"`
}

type RecordsResponse struct {
	Success bool           `json:"success"`
	Payload RecordsPayload `json:"payload"`
}

func (app *AppContext) browse(req request.BrowseRequest) model.PageView {
	view := model.NewViewWindow(req.Query, req.Page)
	return view.Apply(app.Dataset.Records(), req.Page_Size)
}

// Main page.
func (app *AppContext) MainPage(w http.ResponseWriter, r *http.Request) {
	// The browse page always uses the configured page size.
	req := request.ParseBrowse(r.URL.Query(), app.PageSize)
	req.Page_Size = app.PageSize

	logger.Info("Running mainpage",
		zap.String("url", r.URL.Path),
		zap.String("q", req.Query),
		zap.Int("page", req.Page),
	)

	data := render.BrowsePageData{
		View:          app.browse(req),
		DefaultWindow: app.DefaultWindow,
		DatasetSource: app.Dataset.Source(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderBrowsePage(w, data); err != nil {
		logger.Error("Failed to render main page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func (app *AppContext) RecordsAPI(w http.ResponseWriter, r *http.Request) {
	req := request.ParseBrowse(r.URL.Query(), app.PageSize)
	view := app.browse(req)

	writeJSON(w, http.StatusOK, RecordsResponse{
		Success: true,
		Payload: RecordsPayload{
			Records:    view.Records,
			Query:      view.Query,
			Page:       view.Page,
			PageSize:   view.PageSize,
			TotalPages: view.TotalPages,
			TotalItems: view.TotalItems,
			First:      view.First,
			Last:       view.Last,
		},
	})
}

func (app *AppContext) RecordAPI(w http.ResponseWriter, r *http.Request) {
	rec, err := app.Dataset.Get(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
