package service

import (
	"context"
	"errors"
	"testing"

	"educhat-go/internal/model"
)

func TestGetConversationOwnership(t *testing.T) {
	repo := newMockConversationRepository()
	repo.conversations["conv-1"] = &model.Conversation{ID: "conv-1", UserID: 2, Title: "not yours"}
	svc := NewConversationService(repo)

	if _, err := svc.GetConversation(context.Background(), "conv-1", 1); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("unowned conversation error = %v, want ErrConversationNotFound", err)
	}

	conv, err := svc.GetConversation(context.Background(), "conv-1", 2)
	if err != nil {
		t.Fatalf("owner should be able to read the conversation: %v", err)
	}
	if conv.ID != "conv-1" {
		t.Errorf("conversation id = %s, want conv-1", conv.ID)
	}
}

func TestGetConversationIdempotent(t *testing.T) {
	repo := newMockConversationRepository()
	repo.conversations["conv-1"] = &model.Conversation{ID: "conv-1", UserID: 1}
	svc := NewConversationService(repo)

	first, err := svc.GetConversation(context.Background(), "conv-1", 1)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	second, err := svc.GetConversation(context.Background(), "conv-1", 1)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if first.ID != second.ID || len(first.Messages) != len(second.Messages) {
		t.Error("repeated reads should return the same conversation")
	}
}

func TestDeleteConversation(t *testing.T) {
	repo := newMockConversationRepository()
	repo.conversations["conv-1"] = &model.Conversation{ID: "conv-1", UserID: 1}
	svc := NewConversationService(repo)

	// 非所有者删除等同于不存在
	if err := svc.DeleteConversation(context.Background(), "conv-1", 9); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("unowned delete error = %v, want ErrConversationNotFound", err)
	}

	if err := svc.DeleteConversation(context.Background(), "conv-1", 1); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	// 再删一次应报不存在
	if err := svc.DeleteConversation(context.Background(), "conv-1", 1); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("second delete error = %v, want ErrConversationNotFound", err)
	}
}

func TestListConversationsScopedToUser(t *testing.T) {
	repo := newMockConversationRepository()
	repo.conversations["a"] = &model.Conversation{ID: "a", UserID: 1, Title: "mine"}
	repo.conversations["b"] = &model.Conversation{ID: "b", UserID: 2, Title: "theirs"}
	svc := NewConversationService(repo)

	summaries, err := svc.ListConversations(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "a" {
		t.Errorf("summaries = %v, want only the caller's conversations", summaries)
	}
}
