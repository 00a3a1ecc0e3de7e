package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerforge/backend/internal/providers/llm"
	"github.com/careerforge/backend/internal/utils"

	"github.com/sirupsen/logrus"
)

const chatSystemPrompt = `You are a friendly career assistant for a job-search platform.
Help with resumes, interview preparation, job hunting, and career decisions.
Keep answers practical and concise.`

const chatFallbackReply = "I'm having trouble reaching my knowledge service right now. " +
	"Please try again in a moment - your conversation is kept on your side, so nothing is lost."

// maxChatHistory bounds the client-held history folded into the prompt.
const maxChatHistory = 20

type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

type ChatService interface {
	// Reply is stateless: the full conversation history is client-held and
	// passed with every request.
	Reply(ctx context.Context, userID, message string, history []ChatMessage) (string, error)
}

type chatService struct {
	ai  llm.Provider
	log *logrus.Logger
}

func NewChatService(ai llm.Provider, log *logrus.Logger) ChatService {
	if log == nil {
		log = logrus.New()
	}
	return &chatService{ai: ai, log: log}
}

func (s *chatService) Reply(ctx context.Context, userID, message string, history []ChatMessage) (string, error) {
	const op = "ChatService.Reply"

	if strings.TrimSpace(message) == "" {
		return "", utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	reply, err := s.ai.GenerateText(ctx, BuildChatPrompt(message, history))
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"fallback": "chat_reply",
			"user_id":  userID,
		}).Warn("ai call failed, substituting fallback")
		return chatFallbackReply, nil
	}
	return strings.TrimSpace(reply), nil
}

func BuildChatPrompt(message string, history []ChatMessage) string {
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}

	var b strings.Builder
	b.WriteString(chatSystemPrompt)
	b.WriteString("\n\n")
	for _, m := range history {
		role := "User"
		if m.Role == "assistant" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", message)
	return b.String()
}
