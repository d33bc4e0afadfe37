package colors

import (
	"net/http"

	"github.com/fatih/color"
)

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
)

// Status paints an http status code green, yellow for client errors and red for server errors
func Status(code int) string {
	switch {
	case code >= http.StatusInternalServerError:
		return Red(code)
	case code >= http.StatusBadRequest:
		return Yellow(code)
	default:
		return Green(code)
	}
}
