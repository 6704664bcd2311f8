package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldErrorType   = "error_type"
	FieldAccount     = "account"
	FieldAmount      = "amount"
	FieldBalance     = "balance"
	FieldWeek        = "week"
	FieldMonth       = "month"
	FieldYear        = "year"
	FieldEventID     = "event_id"
	FieldActionID    = "action_id"
	FieldActionType  = "action_type"
	FieldLessonID    = "lesson_id"
	FieldTier        = "tier"
	FieldWealthClass = "wealth_class"
	FieldLevel       = "level"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentCLI         = "cli"
	ComponentAccount     = "account"
	ComponentLedger      = "ledger"
	ComponentTime        = "time"
	ComponentEvents      = "events"
	ComponentWeekly      = "weekly_events"
	ComponentProgression = "progression"
	ComponentStorage     = "storage"
	ComponentContent     = "content"
	ComponentBackend     = "backend"
	ComponentMetrics     = "metrics"
)

// Operations defines standard operation names
const (
	OpTransfer = "transfer"
	OpPurchase = "purchase"
	OpSell     = "sell"
	OpAdvance  = "advance"
	OpSelect   = "select"
	OpPerform  = "perform"
	OpQuiz     = "quiz"
	OpLesson   = "lesson"
	OpReset    = "reset"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeFunds         = "insufficient_funds"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithMoney adds the account, amount and resulting balance of a movement.
func (f LogFields) WithMoney(account string, amount, balance float64) LogFields {
	f[FieldAccount] = account
	f[FieldAmount] = amount
	f[FieldBalance] = balance
	return f
}

// WithTime adds the game calendar position.
func (f LogFields) WithTime(week, month, year int) LogFields {
	f[FieldWeek] = week
	f[FieldMonth] = month
	f[FieldYear] = year
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
