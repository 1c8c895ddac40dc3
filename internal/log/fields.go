package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldKey        = "key"
	FieldBabyID     = "baby_id"
	FieldRecordID   = "record_id"
)

// Components
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentBabies   = "babies"
	ComponentFeedings = "feedings"
	ComponentDiapers  = "diapers"
	ComponentExport   = "export"
	ComponentReminder = "reminder"
	ComponentAMQP     = "amqp"
)

// Operations
const (
	OpLoad       = "load"
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpSetCurrent = "set_current"
	OpCascade    = "cascade"
)
