package api

import "time"

type ErrorResponse struct {
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"409"`
	Message string `json:"message" example:"chat window is not open"`
	TraceId string `json:"trace_id,omitempty" example:"4f1c0a7e-0c55-4a57-9d0f-3b8a6f3c2e11"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Position struct {
	X int `json:"x" example:"120"`
	Y int `json:"y" example:"80"`
}

type Message struct {
	Kind      string    `json:"kind" example:"model"`
	Text      string    `json:"text" example:"The paper introduces the Transformer."`
	Timestamp time.Time `json:"timestamp"`
}

type WindowResponse struct {
	Id         string    `json:"id" example:"9b2e7c1a-3f0d-4e55-8a61-0c1d2e3f4a5b"`
	DocumentId string    `json:"document_id" example:"ABCD1234"`
	Title      string    `json:"title" example:"Attention Is All You Need"`
	Width      int       `json:"width" example:"600"`
	Height     int       `json:"height" example:"600"`
	Position   *Position `json:"position,omitempty"`
	Messages   []Message `json:"messages"`
}

type ToggleResponse struct {
	DocumentId string          `json:"document_id" example:"ABCD1234"`
	State      string          `json:"state" example:"OPEN"`
	Window     *WindowResponse `json:"window,omitempty"`
}

type Turn struct {
	Role string `json:"role" example:"user"`
	Text string `json:"text" example:"What is the main contribution?"`
}

type SessionResponse struct {
	DocumentId string `json:"document_id" example:"ABCD1234"`
	Turns      []Turn `json:"turns"`
}

type SendMessageResponse struct {
	DocumentId string `json:"document_id" example:"ABCD1234"`
	Answer     string `json:"answer" example:"The paper introduces the Transformer."`
}

type SynthesizeResponse struct {
	DocumentId string `json:"document_id" example:"ABCD1234"`
	HTML       string `json:"html" example:"<h2>Summary</h2><p>...</p>"`
}

type ModelsResponse struct {
	Models []string `json:"models" example:"gemini-1.5-flash,gemini-1.5-pro"`
	Cached bool     `json:"cached" example:"false"`
}

type PreferencesResponse struct {
	APIKeySet         bool     `json:"api_key_set" example:"true"`
	APIKeyHint        string   `json:"api_key_hint,omitempty" example:"****abcd"`
	Model             string   `json:"model" example:"gemini-1.5-flash"`
	SystemInstruction string   `json:"system_instruction"`
	BaseURL           string   `json:"base_url" example:"https://generativelanguage.googleapis.com/v1beta"`
	ModelList         []string `json:"model_list"`
}

type DocumentSummary struct {
	Id    string `json:"id" example:"ABCD1234"`
	Title string `json:"title" example:"Attention Is All You Need"`
}

type DocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
}

type ReindexResponse struct {
	DocumentId    string `json:"document_id" example:"ABCD1234"`
	AttachmentKey string `json:"attachment_key" example:"PDF00001"`
	Characters    int    `json:"characters" example:"48213"`
}

// requests---------------------

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type GeometryRequest struct {
	X      int `json:"x" example:"120"`
	Y      int `json:"y" example:"80"`
	Width  int `json:"width" validate:"required" example:"600"`
	Height int `json:"height" validate:"required" example:"600"`
}

type CloseChatRequest struct {
	Geometry *GeometryRequest `json:"geometry,omitempty"`
}

// nil fields are left untouched; an empty string clears the preference
type PreferencesRequest struct {
	APIKey            *string `json:"api_key,omitempty"`
	Model             *string `json:"model,omitempty"`
	SystemInstruction *string `json:"system_instruction,omitempty"`
	BaseURL           *string `json:"base_url,omitempty"`
}
