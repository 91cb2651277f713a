// the proxy package exposes the GREEN-API actions as a JSON API.
//
// Credentials are taken from the idInstance and apiTokenInstance query parameters.
// Every call that reaches GREEN-API is answered with 200 and an envelope: the provider's response in "result",
// or the failure message in "error". Only problems with the request itself (e.g. a body that is not a JSON object) are reported with an error status.
package proxy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/AidosNurbergen/Dos/internal/apperrors"
	"github.com/AidosNurbergen/Dos/internal/greenapi"
	"github.com/AidosNurbergen/Dos/internal/logger"
	"github.com/AidosNurbergen/Dos/internal/server/responses"
)

// the proxy accepts any JSON object and forwards it unchanged
const requestBodySchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object"
}`

// APIResponse is the envelope returned by every proxy endpoint
type APIResponse struct {
	Result greenapi.Result `json:"result" swaggertype:"object"`
	Error  string          `json:"error,omitempty" example:"HTTP error! Status: 401"`
}

type Handler struct {
	client     *greenapi.Client
	bodySchema *jsonschema.Schema
}

func NewHandler(client *greenapi.Client) (*Handler, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(requestBodySchema))
	if err != nil {
		return nil, fmt.Errorf("could not parse request body schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("request-body.json", doc); err != nil {
		return nil, fmt.Errorf("could not add request body schema: %w", err)
	}

	schema, err := c.Compile("request-body.json")
	if err != nil {
		return nil, fmt.Errorf("could not compile request body schema: %w", err)
	}

	return &Handler{
		client:     client,
		bodySchema: schema,
	}, nil
}

// GetSettingsHandler godoc
//
//	@Summary	Get instance settings
//	@Tags		GREEN-API
//	@Produce	json
//	@Param		idInstance			query		string	true	"instance id"
//	@Param		apiTokenInstance	query		string	true	"instance API token"
//	@Success	200					{object}	proxy.APIResponse
//	@Router		/api/getSettings [get]
func (h *Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, greenapi.EndpointGetSettings, greenapi.CallOptions{})
}

// GetStateInstanceHandler godoc
//
//	@Summary	Get instance connection state
//	@Tags		GREEN-API
//	@Produce	json
//	@Param		idInstance			query		string	true	"instance id"
//	@Param		apiTokenInstance	query		string	true	"instance API token"
//	@Success	200					{object}	proxy.APIResponse
//	@Router		/api/getStateInstance [get]
func (h *Handler) GetStateInstanceHandler(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, greenapi.EndpointGetStateInstance, greenapi.CallOptions{})
}

// SendMessageHandler godoc
//
//	@Summary	Send a text message
//	@Tags		GREEN-API
//	@Accept		json
//	@Produce	json
//	@Param		idInstance			query		string							true	"instance id"
//	@Param		apiTokenInstance	query		string							true	"instance API token"
//	@Param		request				body		greenapi.SendMessageRequest		true	"message"
//	@Success	200					{object}	proxy.APIResponse
//	@Failure	400					{object}	responses.ErrorResponse
//	@Failure	413					{object}	responses.ErrorResponse
//	@Router		/api/sendMessage [post]
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	h.forwardWithBody(w, r, greenapi.EndpointSendMessage)
}

// SendFileByURLHandler godoc
//
//	@Summary	Send a file by URL
//	@Tags		GREEN-API
//	@Accept		json
//	@Produce	json
//	@Param		idInstance			query		string							true	"instance id"
//	@Param		apiTokenInstance	query		string							true	"instance API token"
//	@Param		request				body		greenapi.SendFileByURLRequest	true	"file"
//	@Success	200					{object}	proxy.APIResponse
//	@Failure	400					{object}	responses.ErrorResponse
//	@Failure	413					{object}	responses.ErrorResponse
//	@Router		/api/sendFileByUrl [post]
func (h *Handler) SendFileByURLHandler(w http.ResponseWriter, r *http.Request) {
	h.forwardWithBody(w, r, greenapi.EndpointSendFileByURL)
}

func (h *Handler) forwardWithBody(w http.ResponseWriter, r *http.Request, endpoint string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			responses.RespondWithError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeRequestTooLarge,
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, fmt.Sprintf("could not read request body: %v", err))
		return
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, fmt.Sprintf("could not decode request body: %v", err))
		return
	}

	if err := h.bodySchema.Validate(doc); err != nil {
		responses.RespondWithError(w, r, http.StatusBadRequest, apperrors.ErrCodeMalformedBody, "request body must be a JSON object")
		return
	}

	h.forward(w, r, endpoint, greenapi.CallOptions{
		Method: http.MethodPost,
		Body:   greenapi.Result(body),
	})
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request, endpoint string, opts greenapi.CallOptions) {
	creds := credentialsFromQuery(r)

	logger.ContextWithLogAttrs(r.Context(), slog.String("endpoint", endpoint))

	result, err := h.client.Call(r.Context(), endpoint, creds, opts)
	if err != nil {
		logger.ContextRequestLogger(r.Context()).Warn("GREEN-API call failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		logger.ContextWithLogAttrs(r.Context(), slog.Int("upstream_status", greenapi.StatusCode(err)))

		responses.RespondWithJSON(w, http.StatusOK, APIResponse{Error: err.Error()})
		return
	}

	responses.RespondWithJSON(w, http.StatusOK, APIResponse{Result: result})
}

func credentialsFromQuery(r *http.Request) greenapi.Credentials {
	q := r.URL.Query()
	return greenapi.Credentials{
		IDInstance:       q.Get("idInstance"),
		APITokenInstance: q.Get("apiTokenInstance"),
	}
}
