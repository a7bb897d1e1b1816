package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/PaperChat/internal/handlers"
	"github.com/akolanti/PaperChat/internal/metrics"
	"github.com/akolanti/PaperChat/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var GetHandler = Wrap(handlers.GetHandler)

var ListDocumentsHandler = Wrap(handlers.ListDocumentsHandler)
var ReindexHandler = Wrap(handlers.ReindexHandler)
var ToggleChatHandler = Wrap(handlers.ToggleChatHandler)
var CloseChatHandler = Wrap(handlers.CloseChatHandler)
var MoveChatHandler = Wrap(handlers.MoveChatHandler)
var SendMessageHandler = Wrap(handlers.SendMessageHandler)
var TranscriptHandler = Wrap(handlers.TranscriptHandler)
var GetSessionHandler = Wrap(handlers.GetSessionHandler)
var ClearSessionHandler = Wrap(handlers.ClearSessionHandler)
var SynthesizeHandler = Wrap(handlers.SynthesizeHandler)
var ListModelsHandler = Wrap(handlers.ListModelsHandler)
var GetPreferencesHandler = Wrap(handlers.GetPreferencesHandler)
var PutPreferencesHandler = Wrap(handlers.PutPreferencesHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
		} else {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(routePattern(r), strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re.logger.Info("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	return rateLimiter(re)
}

// labelled by route pattern, never by document id
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
