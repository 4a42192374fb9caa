// Package assistant serves the streaming chat endpoint. A response body is
// plain text deltas followed by a sentinel and one JSON trailer; the same
// frames travel over the WebSocket variant, one frame per message.
package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	chatModel "github.com/issac8080/aurashop/internal/model/chat"
	assistantService "github.com/issac8080/aurashop/internal/service/assistant"
	chatService "github.com/issac8080/aurashop/internal/service/chat"
	"github.com/issac8080/aurashop/pkg/assistantwire"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Handler streams assistant replies.
type Handler struct {
	responder *assistantService.Responder
	chatSvc   chatService.Store
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

// New builds the handler.
func New(responder *assistantService.Responder, chatSvc chatService.Store, log zerolog.Logger) *Handler {
	return &Handler{
		responder: responder,
		chatSvc:   chatSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// RegisterRoutes mounts the chat endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/stream", h.HandleStream)
	r.Get("/chat/{sessionID}/history", h.HandleHistory)
	r.Get("/assistant/ws", h.HandleWebSocket)
}

// HandleHistory returns the persisted transcript for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	turns, err := h.chatSvc.History(r.Context(), sessionID, limit)
	if err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("load history")
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if turns == nil {
		turns = []chatModel.Turn{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"turns": turns})
}

// HandleStream processes one chat turn over chunked HTTP.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	var req assistantwire.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")

	enc := assistantwire.NewEncoder(w)
	emit := func(delta string) error {
		if err := enc.WriteDelta(delta); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	h.persistUserTurn(r.Context(), req)

	final, content, err := h.respond(r.Context(), req, emit)
	if err != nil {
		// Headers are gone; the client's decoder treats the truncated body
		// as a degraded but usable reply.
		h.log.Warn().Err(err).Str("session_id", req.SessionID).Msg("stream aborted")
		return
	}

	if err := enc.WriteFinal(final); err != nil {
		h.log.Warn().Err(err).Str("session_id", req.SessionID).Msg("write final frame")
		return
	}
	flusher.Flush()

	h.persistAssistantTurn(r.Context(), req.SessionID, content, final)
}

// HandleWebSocket carries the same frames over a socket: every text message
// before the sentinel-bearing one is a delta.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		var req assistantwire.Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			continue
		}

		emit := func(delta string) error {
			return conn.WriteMessage(websocket.TextMessage, []byte(delta))
		}

		h.persistUserTurn(r.Context(), req)

		final, content, err := h.respond(r.Context(), req, emit)
		if err != nil {
			return
		}
		frame, err := assistantwire.EncodeFinal(final)
		if err != nil {
			h.log.Error().Err(err).Msg("encode final frame")
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}

		h.persistAssistantTurn(r.Context(), req.SessionID, content, final)
	}
}

// respond runs the responder while accumulating the full reply text for
// persistence.
func (h *Handler) respond(ctx context.Context, req assistantwire.Request, emit func(string) error) (assistantwire.Final, string, error) {
	var content strings.Builder
	final, err := h.responder.Respond(ctx, req, func(delta string) error {
		content.WriteString(delta)
		return emit(delta)
	})
	return final, content.String(), err
}

// An empty session id means an anonymous session: the turn is answered
// normally but nothing is persisted.
func (h *Handler) persistUserTurn(ctx context.Context, req assistantwire.Request) {
	if req.SessionID == "" {
		return
	}
	err := h.chatSvc.Append(ctx, req.SessionID, chatModel.Turn{
		Role:    chatModel.RoleUser,
		Content: req.Message,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", req.SessionID).Msg("persist user turn")
	}
}

func (h *Handler) persistAssistantTurn(ctx context.Context, sessionID, content string, final assistantwire.Final) {
	if sessionID == "" {
		return
	}
	err := h.chatSvc.Append(ctx, sessionID, chatModel.Turn{
		Role:       chatModel.RoleAssistant,
		Content:    content,
		ProductIDs: final.ProductIDs,
		Actions:    final.Actions,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", sessionID).Msg("persist assistant turn")
	}
}
