package server

import "github.com/pthm/imagediff"

// Result is returned from action handlers to control rendering and side
// effects. The viewer applies it after the handler returns.
//
//	return OK(w.Props())
//	return Err(props, err)
//	return OK(props).Trigger("imagediff:sized", map[string]any{"width": 300})
type Result struct {
	props       imagediff.Props
	err         error
	flashes     []Flash
	trigger     string
	triggerData map[string]any
	headers     map[string]string
	status      int
	skip        bool
}

// OK creates a success result that renders props.
func OK(props imagediff.Props) Result {
	return Result{props: props}
}

// Err creates an error result. Props are the state to render alongside the
// error, normally the state before the failed action.
func Err(props imagediff.Props, err error) Result {
	return Result{props: props, err: err}
}

// Skip creates a result that writes no body.
func Skip() Result {
	return Result{skip: true}
}

// Flash adds a toast notification to the response.
func (r Result) Flash(level, message string) Result {
	r.flashes = append(r.flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger emits an event via the HX-Trigger header.
func (r Result) Trigger(event string, data ...map[string]any) Result {
	r.trigger = event
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// Header sets a custom response header.
func (r Result) Header(key, value string) Result {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

// Status sets the HTTP status code.
func (r Result) Status(code int) Result {
	r.status = code
	return r
}

// Props returns the props the result renders.
func (r Result) Props() imagediff.Props {
	return r.props
}

// Error returns the error carried by the result.
func (r Result) Error() error {
	return r.err
}

// Flashes returns the flash messages.
func (r Result) Flashes() []Flash {
	return r.flashes
}

// ShouldSkip returns whether rendering is suppressed.
func (r Result) ShouldSkip() bool {
	return r.skip
}
