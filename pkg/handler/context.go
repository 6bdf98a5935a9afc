package handler

// DI for all handlers alike.

import (
	"github.com/yumyai/protview/pkg/db"
	"github.com/yumyai/protview/pkg/model"
)

type AppContext struct {
	Dataset       *db.Dataset
	PageSize      int
	DefaultWindow int
	Exports       *ExportJobManager
}

func NewAppContext(ds *db.Dataset, pageSize, defaultWindow int) *AppContext {
	if pageSize < 1 {
		pageSize = model.ITEMS_PER_PAGE
	}
	return &AppContext{
		Dataset:       ds,
		PageSize:      pageSize,
		DefaultWindow: model.ClampWindow(defaultWindow),
		Exports:       NewExportJobManager(),
	}
}
