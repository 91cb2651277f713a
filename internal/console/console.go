// the console package runs the four GREEN-API actions and records their results in an output Log.
//
// Inputs are passed explicitly: adapters (the web UI, the CLI) read the form fields or flags and hand them to the actions.
//
// A failed call is recorded twice. The fetch step writes the failure to the diagnostic logger and appends an "Error" entry,
// then the action appends a second "<endpoint> Error" entry with the same message.
package console

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AidosNurbergen/Dos/internal/greenapi"
)

// ErrorLabel is the label the fetch step uses for failed calls
const ErrorLabel = "Error"

// Executor performs a single API call (implemented by *greenapi.Client)
type Executor interface {
	Call(ctx context.Context, endpoint string, creds greenapi.Credentials, opts greenapi.CallOptions) (greenapi.Result, error)
}

// Console runs actions against an Executor and records the results in out
type Console struct {
	exec   Executor
	out    *Log
	logger *slog.Logger
}

// New returns a Console writing to out. A nil logger uses slog.Default().
func New(exec Executor, out *Log, logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		exec:   exec,
		out:    out,
		logger: logger,
	}
}

func (c *Console) Log() *Log {
	return c.out
}

// GetSettings records the instance settings under "getSettings"
func (c *Console) GetSettings(ctx context.Context, creds greenapi.Credentials) error {
	return c.run(ctx, greenapi.EndpointGetSettings, creds, greenapi.CallOptions{})
}

// GetStateInstance records the instance connection state under "getStateInstance"
func (c *Console) GetStateInstance(ctx context.Context, creds greenapi.Credentials) error {
	return c.run(ctx, greenapi.EndpointGetStateInstance, creds, greenapi.CallOptions{})
}

// SendMessage sends messageText to phoneNumber and records the API response under "sendMessage"
func (c *Console) SendMessage(ctx context.Context, creds greenapi.Credentials, phoneNumber, messageText string) error {
	return c.run(ctx, greenapi.EndpointSendMessage, creds, greenapi.CallOptions{
		Method: http.MethodPost,
		Body: greenapi.SendMessageRequest{
			PhoneNumber: phoneNumber,
			MessageText: messageText,
		},
	})
}

// SendFileByURL sends the file at fileURL to phoneNumber and records the API response under "sendFileByUrl"
func (c *Console) SendFileByURL(ctx context.Context, creds greenapi.Credentials, phoneNumber, fileURL string) error {
	return c.run(ctx, greenapi.EndpointSendFileByURL, creds, greenapi.CallOptions{
		Method: http.MethodPost,
		Body: greenapi.SendFileByURLRequest{
			PhoneNumber: phoneNumber,
			FileURL:     fileURL,
		},
	})
}

func (c *Console) run(ctx context.Context, endpoint string, creds greenapi.Credentials, opts greenapi.CallOptions) error {
	result, err := c.fetch(ctx, endpoint, creds, opts)
	if err != nil {
		c.out.Append(endpoint+" "+ErrorLabel, err.Error())
		return err
	}

	c.out.Append(endpoint, result)
	return nil
}

func (c *Console) fetch(ctx context.Context, endpoint string, creds greenapi.Credentials, opts greenapi.CallOptions) (greenapi.Result, error) {
	result, err := c.exec.Call(ctx, endpoint, creds, opts)
	if err != nil {
		c.logger.Error("error fetching API",
			slog.String("endpoint", endpoint),
			slog.Int("status", greenapi.StatusCode(err)),
			slog.String("error", err.Error()),
		)
		c.out.Append(ErrorLabel, err.Error())
		return nil, err
	}
	return result, nil
}
