package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/careerforge/backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatReply(t *testing.T) {
	ai := &fakeLLM{text: "  Sure, here's how to improve your resume.  "}
	svc := NewChatService(ai, nil)

	reply, err := svc.Reply(context.Background(), "u1", "How do I improve my resume?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Sure, here's how to improve your resume.", reply)
}

func TestChatReplyFallbackOnModelError(t *testing.T) {
	ai := &fakeLLM{textErr: errors.New("quota exceeded")}
	svc := NewChatService(ai, nil)

	// a model outage degrades to the canned reply, never to an error
	reply, err := svc.Reply(context.Background(), "u1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, chatFallbackReply, reply)
}

func TestChatReplyValidation(t *testing.T) {
	svc := NewChatService(&fakeLLM{}, nil)

	_, err := svc.Reply(context.Background(), "u1", "   ", nil)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestBuildChatPromptFoldsHistory(t *testing.T) {
	history := []ChatMessage{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "first reply"},
	}

	prompt := BuildChatPrompt("second question", history)

	assert.Contains(t, prompt, "User: first question")
	assert.Contains(t, prompt, "Assistant: first reply")
	assert.True(t, strings.HasSuffix(prompt, "User: second question\nAssistant:"))
}

func TestBuildChatPromptTrimsHistory(t *testing.T) {
	history := make([]ChatMessage, maxChatHistory+7)
	for i := range history {
		history[i] = ChatMessage{Role: "user", Content: fmt.Sprintf("msg-%d", i)}
	}

	prompt := BuildChatPrompt("latest", history)

	assert.NotContains(t, prompt, "msg-0\n")
	assert.Contains(t, prompt, fmt.Sprintf("msg-%d", len(history)-1))
}
