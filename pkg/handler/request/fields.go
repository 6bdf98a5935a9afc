package request

const MaxPageSize = 100

// Form/query keys shared by the pages and the API.
const (
	FieldQuery    = "q"
	FieldPage     = "page"
	FieldPageSize = "page_size"
	FieldSide     = "side"
	FieldWindow   = "window"
	FieldFormat   = "format"
	FieldID       = "id"
)
