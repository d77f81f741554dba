package application

import "fmt"

// Result is the envelope every public operation returns. Success=false
// implies Data=nil; Success=true with Data=nil is reserved for the
// legitimate empty case ("no pipelines found").
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func failure(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

func success(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// emptySuccess marks the "nothing to report" terminal state, distinct
// from failure: Data stays nil on purpose.
func emptySuccess(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}
