package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/sizing-assistant/internal/chatbot"
	"github.com/jonathan/sizing-assistant/internal/types"
)

// CreateSessionResponse is returned when a conversation starts.
type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Message   string    `json:"message"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sessionID := s.bot.StartConversation("")

	token, expiresAt, err := s.jwtService.GenerateToken(sessionID)
	if err != nil {
		s.bot.ClearSession(sessionID)
		s.logger.Error("failed to issue session token", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, CreateSessionResponse{
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
		Message:   chatbot.WelcomeMessage,
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req types.SendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	resp := s.bot.ProcessMessage(r.Context(), r.PathValue("id"), req.Message)
	if !s.bot.Initialized() {
		s.jsonResponse(w, HTTPStatus(&ErrNotInitialized{}), resp)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	summary, ok := s.bot.SessionInfo(id)
	if !ok {
		s.writeError(w, &ErrNotFound{Resource: "session", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	suggestions, ok := s.bot.Sessions().Suggestions(id)
	if !ok {
		s.writeError(w, &ErrNotFound{Resource: "session", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, suggestions)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.bot.Sessions().Exists(id) {
		s.writeError(w, &ErrNotFound{Resource: "session", ID: id})
		return
	}
	s.bot.ClearSession(id)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// validationError converts validator errors into an ErrValidation for the first failing field.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}
