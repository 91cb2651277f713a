// Package templates holds the templ components of the web console (console.templ, error.templ) and the data they render.
package templates

//go:generate go tool templ generate

// FormValues are the values shown in the form inputs. They are echoed back after each action so the user does not have to type them again.
type FormValues struct {
	IDInstance       string
	APITokenInstance string
	PhoneNumber      string
	MessageText      string
	FilePhoneNumber  string
	FileURL          string
}

// LogEntry is an output log entry prepared for display. HTML is the highlighted, already escaped body.
type LogEntry struct {
	Label string
	HTML  string
}

type ConsolePage struct {
	Form    FormValues
	Log     string // full log text for the apiResponses textarea
	Entries []LogEntry
	Version string
}

// StyleSheet is served at /static/app.css
const StyleSheet = `body{font-family:system-ui,sans-serif;margin:0;background:#f6f8fa;color:#1f2328}
.console{max-width:960px;margin:0 auto;padding:1.5rem}
fieldset{border:1px solid #d0d7de;border-radius:6px;margin-bottom:1rem;padding:1rem;display:grid;grid-template-columns:10rem 1fr;gap:.5rem}
legend{font-weight:600}
fieldset button{grid-column:2;justify-self:start}
input,textarea{font:inherit;padding:.3rem}
#apiResponses{width:100%;font-family:ui-monospace,monospace;box-sizing:border-box}
.entry h3{margin:.75rem 0 .25rem;font-size:.95rem}
.entry pre{margin:0;padding:.5rem;border-radius:6px;overflow-x:auto}
.error{color:#cf222e}
footer{margin-top:1rem;color:#656d76;font-size:.8rem}
`
