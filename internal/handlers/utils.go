package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/PaperChat/internal/adapter"
	"github.com/akolanti/PaperChat/internal/adapter/utils"
	"github.com/akolanti/PaperChat/internal/chat"
	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/domain/commonModels"
	"github.com/akolanti/PaperChat/internal/library"
	"github.com/akolanti/PaperChat/internal/prefs"
	"github.com/akolanti/PaperChat/internal/rag/llm"
	"github.com/akolanti/PaperChat/internal/worker"
)

const maxBodySize = 1 << 20 //1mb

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func decodeJSON(r *http.Request, target any) error {
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the request body", "error", err)
		}
	}(r.Body)
	return json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(target)
}

func documentID(r *http.Request) string {
	return utils.GetChiURLParam(r, "id")
}

func traceID(ctx context.Context) string {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.WithTrace(ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, r *http.Request, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(traceID(r.Context()), message, httpCode, false))
}

// writeServiceError maps domain errors onto status codes. Gemini errors keep their message verbatim.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code, retry := statusFor(err)
	log := logRH.WithTrace(r.Context()).With("path", r.URL.Path, "status", code)
	if code >= http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Warn("Request rejected", "error", err)
	}
	writeJsonResponse(w, code, adapter.BadRequest(traceID(r.Context()), err.Error(), code, retry))
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, commonModels.ErrDocumentNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, chat.ErrWindowNotOpen):
		return http.StatusConflict, false
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrInvalidGeometry),
		errors.Is(err, chat.ErrNoNotes),
		errors.Is(err, library.ErrInvalidDocumentID),
		errors.Is(err, library.ErrNoAttachment),
		errors.Is(err, library.ErrInvalidAttachment),
		errors.Is(err, prefs.ErrUnknownPreference):
		return http.StatusBadRequest, false
	case llm.IsConfigError(err):
		return http.StatusPreconditionFailed, false
	case llm.IsRemoteError(err), llm.IsEmptyResponse(err):
		return http.StatusBadGateway, true
	case errors.Is(err, worker.ErrPoolStopped):
		return http.StatusServiceUnavailable, true
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, true
	default:
		return http.StatusInternalServerError, false
	}
}
