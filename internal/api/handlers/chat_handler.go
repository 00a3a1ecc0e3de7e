package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/careerforge/backend/internal/providers/llm"
	"github.com/careerforge/backend/internal/services"
	"github.com/careerforge/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatHandler struct {
	svc      services.ChatService
	ai       llm.Provider
	upgrader websocket.Upgrader
}

func NewChatHandler(svc services.ChatService, ai llm.Provider) *ChatHandler {
	return &ChatHandler{
		svc: svc,
		ai:  ai,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type ChatRequest struct {
	Message string                 `json:"message" binding:"required"`
	History []services.ChatMessage `json:"history"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ChatHandler.Chat", "invalid request body", err))
		return
	}

	reply, err := h.svc.Reply(c.Request.Context(), userID, req.Message, req.History)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type chatWSClientMsg struct {
	Type    string                 `json:"type"` // "message"
	Message string                 `json:"message"`
	History []services.ChatMessage `json:"history"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

// ChatWS streams assistant replies chunk by chunk over a websocket.
func (h *ChatHandler) ChatWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx := c.Request.Context()

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// single-shot form: ?prompt= streams one reply before the message loop
	if prompt := strings.TrimSpace(c.Query("prompt")); prompt != "" {
		if !h.streamReply(ctx, wc, userID, prompt, nil) {
			return
		}
	}

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg chatWSClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = wc.writeJSON(gin.H{"type": "error", "code": utils.CodeInvalidArgument, "message": "invalid json"})
			continue
		}

		switch msg.Type {
		case "message":
			if strings.TrimSpace(msg.Message) == "" {
				_ = wc.writeJSON(gin.H{"type": "error", "code": utils.CodeInvalidArgument, "message": "message is required"})
				continue
			}
			if !h.streamReply(ctx, wc, userID, msg.Message, msg.History) {
				return
			}

		default:
			_ = wc.writeJSON(gin.H{"type": "error", "code": utils.CodeInvalidArgument, "message": "unknown message type"})
		}
	}
}

// streamReply forwards model chunks to the socket and closes the exchange with
// a done frame. Returns false when the connection is no longer usable.
func (h *ChatHandler) streamReply(ctx context.Context, wc *wsConn, userID, message string, history []services.ChatMessage) bool {
	prompt := services.BuildChatPrompt(message, history)
	chunks, errs := h.ai.StreamAnswer(ctx, prompt)

	streamed := false
stream:
	for {
		select {
		case chunk, open := <-chunks:
			if !open {
				break stream
			}
			streamed = true
			if werr := wc.writeJSON(gin.H{"type": "chunk", "text": chunk}); werr != nil {
				return false
			}
		case serr, open := <-errs:
			if !open {
				// keep draining chunks until they close
				errs = nil
				continue
			}
			if serr != nil && !streamed {
				// nothing sent yet, fall back to a non-streaming reply
				reply, rerr := h.svc.Reply(ctx, userID, message, history)
				if rerr == nil {
					_ = wc.writeJSON(gin.H{"type": "chunk", "text": reply})
				}
			}
			break stream
		case <-ctx.Done():
			return false
		}
	}

	return wc.writeJSON(gin.H{"type": "done"}) == nil
}
