// Package api exposes the message actions and views over HTTP. The
// handlers are thin wrappers: validation, sequencing and fan-out all
// live behind the service.
package api

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"message-hub/domain"
	"message-hub/errors"
	"message-hub/repositories"
	"message-hub/services"

	"github.com/gorilla/mux"
)

// messageRoles may read and post in group channels. Role definitions
// themselves belong to the access-control collaborator.
var messageRoles = []string{"speaker", "vip", "moderator", "owner"}

type Server struct {
	log     *slog.Logger
	service services.IMessageService
	welcome *services.WelcomeService
}

func NewServer(log *slog.Logger, service services.IMessageService, welcome *services.WelcomeService) *Server {
	return &Server{log: log, service: service, welcome: welcome}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/messages", s.postMessage).Methods(http.MethodPost)
	r.HandleFunc("/messages/{id}", s.getMessage).Methods(http.MethodGet)
	r.HandleFunc("/channels/{toType}/{toId}/messages", s.getMessages).Methods(http.MethodGet)
	r.HandleFunc("/private-messages", s.postPrivateMessage).Methods(http.MethodPost)
	r.HandleFunc("/private-conversations", s.getOrCreateConversation).Methods(http.MethodPost)
	r.HandleFunc("/private-conversations", s.lookupConversation).Methods(http.MethodGet)
	r.HandleFunc("/private-conversations/{id}", s.getConversation).Methods(http.MethodGet)
	r.HandleFunc("/triggers/register-complete", s.registerComplete).Methods(http.MethodPost)
	return r
}

// sender is taken from gateway headers; authenticating them is the
// gateway's concern, not this service's.
func senderOf(r *http.Request) domain.Sender {
	return domain.Sender{
		User:    r.Header.Get("X-User-Id"),
		Session: r.Header.Get("X-Session-Id"),
	}
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	var cmd domain.PostMessageCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sender := senderOf(r)
	if !s.authorize(w, r, cmd.ToType, cmd.ToID, sender) {
		return
	}
	id, err := s.service.PostMessage(r.Context(), cmd, sender)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": id})
}

func (s *Server) postPrivateMessage(w http.ResponseWriter, r *http.Request) {
	var cmd domain.PostPrivateMessageCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id, err := s.service.PostPrivateMessage(r.Context(), cmd, senderOf(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": id})
}

func (s *Server) getMessages(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sender := senderOf(r)
	if !s.authorize(w, r, vars["toType"], vars["toId"], sender) {
		return
	}
	query := repositories.MessageRange{
		ToType: vars["toType"],
		ToID:   vars["toId"],
		GT:     r.URL.Query().Get("gt"),
		LT:     r.URL.Query().Get("lt"),
		GTE:    r.URL.Query().Get("gte"),
		LTE:    r.URL.Query().Get("lte"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		query.Limit = limit
	}
	query.Reverse = r.URL.Query().Get("reverse") == "true"

	messages, err := s.service.GetMessages(query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) getMessage(w http.ResponseWriter, r *http.Request) {
	id := domain.MessageID(mux.Vars(r)["id"])
	channel, _, err := domain.ParseMessageID(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.authorize(w, r, channel.ToType, channel.ToID, senderOf(r)) {
		return
	}
	message, err := s.service.GetMessage(id)
	if stderrors.Is(err, errors.ErrMessageNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message)
}

func (s *Server) getOrCreateConversation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User    string `json:"user,omitempty"`
		Session string `json:"session,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	other := domain.UserIdentity(body.User)
	if body.User == "" {
		other = domain.SessionIdentity(body.Session)
	}
	conversation, err := s.service.GetOrCreateConversation(r.Context(), senderOf(r), other)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

// lookupConversation resolves the sender's conversation with the other
// participant without creating one.
func (s *Server) lookupConversation(w http.ResponseWriter, r *http.Request) {
	other := domain.UserIdentity(r.URL.Query().Get("user"))
	if other.ID == "" {
		other = domain.SessionIdentity(r.URL.Query().Get("session"))
	}
	conversation, found, err := s.service.LookupConversation(r.Context(), senderOf(r), other)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, errors.ErrConversationNotFound)
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sender := senderOf(r)
	allowed, err := s.service.CheckPrivAccess(r.Context(), id, sender)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !allowed {
		writeError(w, http.StatusForbidden, errors.ErrPrivAccessDenied)
		return
	}
	conversation, err := s.service.GetConversation(r.Context(), id)
	if stderrors.Is(err, errors.ErrConversationNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

func (s *Server) registerComplete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User string `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.User == "" {
		writeError(w, http.StatusBadRequest, errors.ErrMalformedParticipant)
		return
	}
	if err := s.welcome.OnRegisterComplete(r.Context(), body.User); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorize applies the channel's read/write policy: conversation
// membership for priv channels, destination roles otherwise.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, toType, toID string, sender domain.Sender) bool {
	var allowed bool
	var err error
	if toType == domain.ToTypePrivate {
		allowed, err = s.service.CheckPrivAccess(r.Context(), toID, sender)
	} else {
		allowed, err = s.service.CheckAccess(r.Context(), toType, toID, messageRoles, sender)
	}
	if err != nil {
		writeServiceError(w, err)
		return false
	}
	if !allowed {
		writeError(w, http.StatusForbidden, errors.ErrNoAccess)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case stderrors.Is(err, errors.ErrMalformedParticipant):
		writeError(w, http.StatusBadRequest, err)
	case stderrors.Is(err, errors.ErrNoAccess):
		writeError(w, http.StatusForbidden, err)
	case stderrors.Is(err, errors.ErrConversationNotFound),
		stderrors.Is(err, errors.ErrMessageNotFound):
		writeError(w, http.StatusNotFound, err)
	case stderrors.Is(err, errors.ErrPublicSessionInfo):
		writeError(w, http.StatusGatewayTimeout, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
