package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())

	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("pending").Valid())
	assert.False(t, TaskStatus("Done").Valid())
}

func TestUpdateTaskRequestPresence(t *testing.T) {
	// An absent field decodes to nil, a present-but-empty field does not.
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":""}`), &req))
	require.NotNil(t, req.Description)
	assert.Equal(t, "", *req.Description)
	assert.Nil(t, req.Title)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.DueDate)
}

func TestUserPasswordHashNotSerialized(t *testing.T) {
	raw, err := json.Marshal(User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
}
