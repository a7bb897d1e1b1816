package adapter

import (
	"github.com/akolanti/PaperChat/internal/api"
	"github.com/akolanti/PaperChat/internal/chat"
	"github.com/akolanti/PaperChat/internal/domain/chatModel"
	"github.com/akolanti/PaperChat/internal/library"
	"github.com/akolanti/PaperChat/internal/prefs"
)

func ToToggleResponse(docID string, res chat.OpenResult) api.ToggleResponse {
	out := api.ToggleResponse{DocumentId: docID, State: string(res.State)}
	if res.Window != nil {
		window := ToWindowResponse(*res.Window)
		out.Window = &window
	}
	return out
}

func ToWindowResponse(view chat.WindowView) api.WindowResponse {
	messages := make([]api.Message, 0, len(view.Messages))
	for _, m := range view.Messages {
		messages = append(messages, api.Message{Kind: string(m.Kind), Text: m.Text, Timestamp: m.Timestamp})
	}
	var position *api.Position
	if view.Position != nil {
		position = &api.Position{X: view.Position.X, Y: view.Position.Y}
	}
	return api.WindowResponse{
		Id:         view.Id,
		DocumentId: view.DocumentId,
		Title:      view.Title,
		Width:      view.Width,
		Height:     view.Height,
		Position:   position,
		Messages:   messages,
	}
}

func ToSessionResponse(docID string, turns []chatModel.ConversationTurn) api.SessionResponse {
	out := api.SessionResponse{DocumentId: docID, Turns: make([]api.Turn, 0, len(turns))}
	for _, t := range turns {
		out.Turns = append(out.Turns, api.Turn{Role: string(t.Role), Text: t.Text})
	}
	return out
}

func ToGeometry(req api.GeometryRequest) chatModel.Geometry {
	return chatModel.Geometry{X: req.X, Y: req.Y, Width: req.Width, Height: req.Height}
}

func ToPreferencesResponse(s prefs.Snapshot) api.PreferencesResponse {
	models := s.ModelList
	if models == nil {
		models = []string{}
	}
	return api.PreferencesResponse{
		APIKeySet:         s.APIKeySet,
		APIKeyHint:        s.APIKeyHint,
		Model:             s.Model,
		SystemInstruction: s.SystemInstruction,
		BaseURL:           s.BaseURL,
		ModelList:         models,
	}
}

func ToDocumentsResponse(docs []library.Summary) api.DocumentsResponse {
	out := api.DocumentsResponse{Documents: make([]api.DocumentSummary, 0, len(docs))}
	for _, d := range docs {
		out.Documents = append(out.Documents, api.DocumentSummary{Id: d.Id, Title: d.Title})
	}
	return out
}

func ToReindexResponse(res library.ReindexResult) api.ReindexResponse {
	return api.ReindexResponse{DocumentId: res.DocumentId, AttachmentKey: res.AttachmentKey, Characters: res.Characters}
}

func BadRequest(traceId string, message string, code int, retry bool) api.ErrorResponse {
	return api.ErrorResponse{Error: api.OutgoingError{Code: code, Message: message, TraceId: traceId, Retry: retry}}
}
