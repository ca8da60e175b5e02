package driving

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func TestSyncStatus_MarshalJSON(t *testing.T) {
	t.Run("idle omits cooldown and summary", func(t *testing.T) {
		data, err := json.Marshal(SyncStatus{State: domain.RunIdle, Passes: 2})
		require.NoError(t, err)
		assert.JSONEq(t, `{"state":"idle","passes":2,"progress":0}`, string(data))
	})

	t.Run("cooldown carries deadline and summary", func(t *testing.T) {
		until := time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC)
		status := SyncStatus{
			State:         domain.RunCooldown,
			CooldownUntil: until,
			Passes:        1,
			LastSummary: &domain.PassSummary{
				New:      1,
				Failed:   1,
				Failures: []domain.IdentityFailure{{DocumentID: "a.docx", Reason: "timeout"}},
			},
			LastError: "",
		}

		data, err := json.Marshal(status)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "cooldown", decoded["state"])
		assert.Equal(t, "2024-05-01T12:00:05Z", decoded["cooldown_until"])
		summary, ok := decoded["last_summary"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 1, summary["failed"], 0)
		failures, ok := summary["failures"].([]any)
		require.True(t, ok)
		assert.Equal(t, "a.docx", failures[0].(map[string]any)["document_id"])
	})
}
