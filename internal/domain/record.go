package domain

import "strings"

const (
	FieldType           = "type"
	FieldContent        = "content"
	FieldSuccess        = "success"
	FieldGeneratedText  = "generated_text"
	FieldErrorMessage   = "error_message"
	FieldHTTPStatusCode = "http_status_code"

	TypeUserInput   = "user_input"
	TypeAgentOutput = "agent_output"
)

// Record is the structured value passed between nodes. Values follow the
// shapes produced by encoding/json: maps, slices, strings, numbers, bools and nil.
type Record map[string]any

func NewUserInput(content string) Record {
	return Record{
		FieldType:    TypeUserInput,
		FieldContent: content,
	}
}

func SuccessResponse(text string, statusCode int) Record {
	return Record{
		FieldSuccess:        true,
		FieldGeneratedText:  text,
		FieldHTTPStatusCode: statusCode,
	}
}

func FailureResponse(message string, statusCode int) Record {
	return Record{
		FieldSuccess:        false,
		FieldErrorMessage:   message,
		FieldHTTPStatusCode: statusCode,
	}
}

func ValidationFailure(message string) Record {
	return Record{
		FieldSuccess:      false,
		FieldErrorMessage: message,
	}
}

// Clone returns a deep copy. A nil record clones to an empty one.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Record:
		return v.Clone()
	case map[string]any:
		return map[string]any(Record(v).Clone())
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = cloneValue(v[i])
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return v
	}
}

func (r Record) Content() (string, bool) {
	content, ok := r[FieldContent].(string)
	return content, ok
}

func (r Record) String(key string) string {
	value, _ := r[key].(string)
	return value
}

func (r Record) Success() bool {
	success, _ := r[FieldSuccess].(bool)
	return success
}

func (r Record) GeneratedText() string {
	return r.String(FieldGeneratedText)
}

func (r Record) ErrorMessage() string {
	return r.String(FieldErrorMessage)
}

func (r Record) HTTPStatusCode() int {
	switch v := r[FieldHTTPStatusCode].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// IsResponse reports whether the record carries a success flag.
func (r Record) IsResponse() bool {
	_, ok := r[FieldSuccess].(bool)
	return ok
}

// Summary is a short human-readable rendering of a record for terminal output.
func (r Record) Summary() string {
	if content, ok := r.Content(); ok {
		return content
	}
	if !r.IsResponse() {
		return ""
	}
	if r.Success() {
		return r.GeneratedText()
	}

	message := strings.TrimSpace(r.ErrorMessage())
	if message == "" {
		message = "unknown error"
	}
	return "error: " + message
}
