package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iamzain804/Lumina-PDF-Bot/internal/core/domain"
)

func TestConversationsHistory(t *testing.T) {
	store := newFakeConversations()
	_, err := store.Append("manual", domain.RoleUser, "question one", nil)
	require.NoError(t, err)
	_, err = store.Append("manual", domain.RoleAssistant, "answer one", nil)
	require.NoError(t, err)

	svc := NewConversations(store)

	msgs := svc.History(context.Background(), "manual", 0)
	require.Len(t, msgs, 2)
	assert.Equal(t, "question one", msgs[0].Content)

	msgs = svc.History(context.Background(), "manual", 1)
	require.Len(t, msgs, 1)
	assert.Equal(t, "answer one", msgs[0].Content)
}

func TestConversationsStats(t *testing.T) {
	store := newFakeConversations()
	_, err := store.Append("manual", domain.RoleUser, "q", nil)
	require.NoError(t, err)

	svc := NewConversations(store)
	stats := svc.Stats(context.Background(), "manual")
	assert.Equal(t, 1, stats.MessageCount)
}

func TestConversationsClear(t *testing.T) {
	store := newFakeConversations()
	_, err := store.Append("manual", domain.RoleUser, "q", nil)
	require.NoError(t, err)

	svc := NewConversations(store)
	require.NoError(t, svc.Clear(context.Background(), "manual"))
	assert.Equal(t, []string{"manual"}, store.cleared)
	assert.Empty(t, store.History("manual", 0))
}

func TestConversationsClearAll(t *testing.T) {
	store := newFakeConversations()
	_, err := store.Append("a", domain.RoleUser, "q", nil)
	require.NoError(t, err)
	_, err = store.Append("b", domain.RoleUser, "q", nil)
	require.NoError(t, err)

	svc := NewConversations(store)
	require.NoError(t, svc.Clear(context.Background(), ""))
	assert.Empty(t, store.Documents())
}
