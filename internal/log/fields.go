package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSlot        = "slot"
	FieldTransaction = "transaction_id"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldKind        = "kind"
	FieldEmail       = "email"
	FieldCount       = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentState   = "state"
	ComponentStorage = "storage"
	ComponentCatalog = "catalog"
)

// Operations defines standard operation names
const (
	OpSetUser        = "set_user"
	OpUpdateSettings = "update_settings"
	OpAddExpense     = "add_expense"
	OpAddIncome      = "add_income"
	OpDeleteExpense  = "delete_expense"
	OpDeleteAll      = "delete_all_expenses"
	OpReset          = "reset"
	OpLoad           = "load"
	OpSave           = "save"
	OpErase          = "erase"
	OpStartup        = "startup"
	OpShutdown       = "shutdown"
)
