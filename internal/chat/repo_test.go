package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestListMessagesAscendingByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, repo.InsertMessage(context.Background(), &ChatMessage{
			Role:      RoleUser,
			Content:   content,
			Timestamp: time.Now(),
			ModelID:   "m",
		}))
	}

	msgs, err := repo.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "one", msgs[0].Content)
	require.Equal(t, "three", msgs[2].Content)
	require.Less(t, msgs[0].ID, msgs[1].ID)
	require.Less(t, msgs[1].ID, msgs[2].ID)
}

func TestUpsertFeedbackKeepsSingleRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	msg := &ChatMessage{Role: RoleAssistant, Content: "Hi there", Timestamp: time.Now()}
	require.NoError(t, repo.InsertMessage(context.Background(), msg))

	require.NoError(t, repo.UpsertFeedback(context.Background(), msg.ID, true, "helpful"))
	require.NoError(t, repo.UpsertFeedback(context.Background(), msg.ID, false, "actually not"))

	var count int64
	require.NoError(t, db.Model(&Feedback{}).Where("chat_message_id = ?", msg.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	fb, err := repo.FeedbackFor(context.Background(), msg.ID)
	require.NoError(t, err)
	require.False(t, fb.IsPositive)
	require.Equal(t, "actually not", fb.Comment)
}

func TestClearRemovesMessagesAndFeedback(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	msg := &ChatMessage{Role: RoleUser, Content: "Hello", Timestamp: time.Now()}
	require.NoError(t, repo.InsertMessage(context.Background(), msg))
	require.NoError(t, repo.UpsertFeedback(context.Background(), msg.ID, true, ""))

	require.NoError(t, repo.Clear(context.Background()))

	msgs, err := repo.ListMessages(context.Background())
	require.NoError(t, err)
	require.Empty(t, msgs)

	var fbCount int64
	require.NoError(t, db.Model(&Feedback{}).Count(&fbCount).Error)
	require.Zero(t, fbCount)
}
