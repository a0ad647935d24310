package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldExpenseID  = "expense_id"
	FieldPeriod     = "period"
	FieldCategory   = "category"
	FieldLimit      = "limit"
	FieldPage       = "page"
	FieldBackend    = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentGateway = "gateway"
	ComponentForm    = "form"
	ComponentList    = "list"
	ComponentSummary = "summary"
	ComponentDetail  = "detail"
	ComponentSession = "session"
	ComponentChart   = "chart"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpList    = "list"
	OpGet     = "get"
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpSummary = "summary"
	OpProfile = "profile"
	OpRender  = "render"
)
