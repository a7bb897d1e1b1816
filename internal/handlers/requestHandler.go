package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/akolanti/PaperChat/internal/adapter"
	"github.com/akolanti/PaperChat/internal/api"
	"github.com/akolanti/PaperChat/internal/prefs"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ListDocumentsHandler godoc
// @Summary      List library documents
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentsResponse
// @Failure      500  {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		docs, err := handlerInstance.services.Library.ListDocuments(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentsResponse(docs))
	}
}

// ReindexHandler godoc
// @Summary      Rebuild the full-text cache of a document
// @Description  Extracts the text of the best attachment (PDF preferred) into the cache used for chat context.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.ReindexResponse
// @Failure      400  {object}  api.ErrorResponse  "Document has no attachment"
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Failure      500  {object}  api.ErrorResponse  "Extraction failed"
// @Security     BearerAuth
// @Router       /documents/{id}/reindex [post]
func ReindexHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		res, err := handlerInstance.services.Library.Reindex(r.Context(), documentID(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToReindexResponse(res))
	}
}

// ToggleChatHandler godoc
// @Summary      Toggle the chat window of a document
// @Description  Opens a chat window for the document, or closes it when one is already open.
// @Tags         Chat
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.ToggleResponse
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Security     BearerAuth
// @Router       /documents/{id}/chat [post]
func ToggleChatHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		docID := documentID(r)
		res, err := handlerInstance.services.Chat.OpenChat(r.Context(), docID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToToggleResponse(docID, res))
	}
}

// CloseChatHandler godoc
// @Summary      Close the chat window of a document
// @Description  User-driven close. The final geometry, when given, is saved for the next window.
// @Tags         Chat
// @Accept       json
// @Param        id       path  string                 true   "Document ID"
// @Param        request  body  api.CloseChatRequest   false  "Final window geometry"
// @Success      204
// @Failure      409  {object}  api.ErrorResponse  "Window is not open"
// @Security     BearerAuth
// @Router       /documents/{id}/chat/close [post]
func CloseChatHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		var req api.CloseChatRequest
		//an empty body, chunked or not, closes without geometry
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			WriteErrorResponse(w, r, http.StatusBadRequest, "Bad Request")
			return
		}
		var err error
		if req.Geometry != nil {
			g := adapter.ToGeometry(*req.Geometry)
			err = handlerInstance.services.Chat.CloseChat(r.Context(), documentID(r), &g)
		} else {
			err = handlerInstance.services.Chat.CloseChat(r.Context(), documentID(r), nil)
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// MoveChatHandler godoc
// @Summary      Move or resize the chat window
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Document ID"
// @Param        request  body      api.GeometryRequest  true  "New geometry"
// @Success      200      {object}  api.WindowResponse
// @Failure      400      {object}  api.ErrorResponse  "Invalid geometry"
// @Failure      409      {object}  api.ErrorResponse  "Window is not open"
// @Security     BearerAuth
// @Router       /documents/{id}/chat/geometry [put]
func MoveChatHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		var req api.GeometryRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteErrorResponse(w, r, http.StatusBadRequest, "Bad Request")
			return
		}
		view, err := handlerInstance.services.Chat.MoveChat(documentID(r), adapter.ToGeometry(req))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToWindowResponse(view))
	}
}

// SendMessageHandler godoc
// @Summary      Ask a question about a document
// @Description  Builds the document context, sends it with the question to Gemini and records both turns. Turns for one document run one at a time.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Document ID"
// @Param        request  body      api.SendMessageRequest  true  "Question"
// @Success      200      {object}  api.SendMessageResponse
// @Failure      400      {object}  api.ErrorResponse  "Empty message"
// @Failure      409      {object}  api.ErrorResponse  "Window is not open"
// @Failure      412      {object}  api.ErrorResponse  "API key missing"
// @Failure      502      {object}  api.ErrorResponse  "Gemini error"
// @Security     BearerAuth
// @Router       /documents/{id}/chat/messages [post]
func SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		var req api.SendMessageRequest
		if err := decodeJSON(r, &req); err != nil {
			logRH.WithTrace(r.Context()).Warn("Bad chat request", "error", err)
			WriteErrorResponse(w, r, http.StatusBadRequest, "Bad Request")
			return
		}
		docID := documentID(r)
		reply, err := handlerInstance.services.Chat.SendMessage(r.Context(), docID, req.Message)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, api.SendMessageResponse{DocumentId: docID, Answer: reply.Text})
	}
}

// TranscriptHandler godoc
// @Summary      Get the rendered messages of the chat window
// @Description  Includes notices for failed turns, which are not part of the session.
// @Tags         Chat
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.WindowResponse
// @Failure      409  {object}  api.ErrorResponse  "Window is not open"
// @Security     BearerAuth
// @Router       /documents/{id}/chat/messages [get]
func TranscriptHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		view, err := handlerInstance.services.Chat.Transcript(documentID(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToWindowResponse(view))
	}
}

// GetSessionHandler godoc
// @Summary      Get the conversation history of a document
// @Tags         Session
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.SessionResponse
// @Security     BearerAuth
// @Router       /documents/{id}/session [get]
func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		docID := documentID(r)
		writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(docID, handlerInstance.services.Chat.History(docID)))
	}
}

// ClearSessionHandler godoc
// @Summary      Reset the conversation of a document
// @Tags         Session
// @Param        id   path  string  true  "Document ID"
// @Success      204
// @Security     BearerAuth
// @Router       /documents/{id}/session [delete]
func ClearSessionHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		if err := handlerInstance.services.Chat.ClearSession(r.Context(), documentID(r)); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SynthesizeHandler godoc
// @Summary      Merge the notes of a document into one HTML summary
// @Tags         Notes
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.SynthesizeResponse
// @Failure      400  {object}  api.ErrorResponse  "Document has no notes"
// @Failure      412  {object}  api.ErrorResponse  "API key missing"
// @Failure      502  {object}  api.ErrorResponse  "Gemini error"
// @Security     BearerAuth
// @Router       /documents/{id}/synthesize [post]
func SynthesizeHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		docID := documentID(r)
		html, err := handlerInstance.services.Chat.SynthesizeNotes(r.Context(), docID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJsonResponse(w, http.StatusOK, api.SynthesizeResponse{DocumentId: docID, HTML: html})
	}
}

// ListModelsHandler godoc
// @Summary      List chat-capable Gemini models
// @Description  Verifies the API key by listing models and caches the result. cached=true answers from the cache without a network call.
// @Tags         Models
// @Produce      json
// @Param        cached  query     bool  false  "Return the cached list"
// @Success      200     {object}  api.ModelsResponse
// @Failure      412     {object}  api.ErrorResponse  "API key missing"
// @Failure      502     {object}  api.ErrorResponse  "Gemini error"
// @Security     BearerAuth
// @Router       /models [get]
func ListModelsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		p := handlerInstance.services.Prefs
		if cached, _ := strconv.ParseBool(r.URL.Query().Get("cached")); cached {
			models := p.ModelList(r.Context())
			if models == nil {
				models = []string{}
			}
			writeJsonResponse(w, http.StatusOK, api.ModelsResponse{Models: models, Cached: true})
			return
		}

		models, err := handlerInstance.services.Gateway.ListModels(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if err := p.SaveModelList(r.Context(), models); err != nil {
			logRH.WithTrace(r.Context()).Warn("Could not cache model list", "error", err)
		}
		writeJsonResponse(w, http.StatusOK, api.ModelsResponse{Models: models})
	}
}

// GetPreferencesHandler godoc
// @Summary      Get the Gemini settings
// @Description  The API key is never returned, only a masked hint.
// @Tags         Preferences
// @Produce      json
// @Success      200  {object}  api.PreferencesResponse
// @Security     BearerAuth
// @Router       /preferences [get]
func GetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		writeJsonResponse(w, http.StatusOK, adapter.ToPreferencesResponse(handlerInstance.services.Prefs.Snapshot(r.Context())))
	}
}

// PutPreferencesHandler godoc
// @Summary      Update the Gemini settings
// @Description  Omitted fields are unchanged; an empty string resets a field to its default.
// @Tags         Preferences
// @Accept       json
// @Produce      json
// @Param        request  body      api.PreferencesRequest  true  "Settings"
// @Success      200      {object}  api.PreferencesResponse
// @Failure      400      {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /preferences [put]
func PutPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		var req api.PreferencesRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteErrorResponse(w, r, http.StatusBadRequest, "Bad Request")
			return
		}
		p := handlerInstance.services.Prefs
		updates := []struct {
			key   string
			value *string
		}{
			{prefs.KeyAPIKey, req.APIKey},
			{prefs.KeyModel, req.Model},
			{prefs.KeySystemInstruction, req.SystemInstruction},
			{prefs.KeyBaseURL, req.BaseURL},
		}
		for _, u := range updates {
			if u.value == nil {
				continue
			}
			if err := p.Set(r.Context(), u.key, *u.value); err != nil {
				writeServiceError(w, r, err)
				return
			}
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToPreferencesResponse(p.Snapshot(r.Context())))
	}
}
