package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aldisaputra17/chatbot-backend/internal/api/response"
	"github.com/aldisaputra17/chatbot-backend/internal/domain"
	"github.com/aldisaputra17/chatbot-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ChatHandler handles the chat, session and history endpoints
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles one chat exchange
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resp, err := h.chatService.Send(r.Context(), req)
	if err != nil {
		var genErr *service.GenerationError
		if errors.As(err, &genErr) {
			response.BadGateway(w, "LLM error: "+genErr.Error())
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, resp)
}

// ListSessions returns all sessions, most recently created first
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.chatService.ListSessions(r.Context())
	if err != nil {
		response.InternalError(w, "failed to list sessions")
		return
	}

	response.OK(w, sessions)
}

// History returns a session's messages, oldest first
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, "missing session ID")
		return
	}

	history, err := h.chatService.History(r.Context(), sessionID)
	if err != nil {
		response.InternalError(w, "failed to fetch session history")
		return
	}

	response.OK(w, history)
}

// UpdateSession upserts a session's title override
func (h *ChatHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, "missing session ID")
		return
	}

	var req domain.SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	session, err := h.chatService.Rename(r.Context(), sessionID, req.Title)
	if err != nil {
		response.InternalError(w, "failed to update session")
		return
	}

	response.OK(w, session)
}
