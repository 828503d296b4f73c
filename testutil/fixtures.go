package testutil

import (
	"encoding/json"
	"testing"
)

// PairedRecord builds a PairedTurn record from prompt/response pairs. An
// empty prompt or response omits that half of the entry.
func PairedRecord(t *testing.T, turns ...[2]string) string {
	t.Helper()
	history := make([]map[string]interface{}, 0, len(turns))
	for _, turn := range turns {
		entry := map[string]interface{}{}
		if turn[0] != "" {
			entry["user"] = map[string]interface{}{
				"content": map[string]interface{}{
					"Prompt": map[string]interface{}{"prompt": turn[0]},
				},
			}
		}
		if turn[1] != "" {
			entry["assistant"] = map[string]interface{}{"content": turn[1]}
		}
		history = append(history, entry)
	}
	return marshal(t, map[string]interface{}{"history": history})
}

// FlatRecord builds a FlatTurnList record with one inner list per prompt
func FlatRecord(t *testing.T, prompts ...string) string {
	t.Helper()
	history := make([][]map[string]interface{}, 0, len(prompts))
	for _, prompt := range prompts {
		history = append(history, []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"Prompt": map[string]interface{}{"prompt": prompt},
				},
			},
		})
	}
	return marshal(t, map[string]interface{}{"history": history})
}

// NestedRecord builds a NestedCollection document from (type, body) pairs
func NestedRecord(t *testing.T, messages ...[2]string) string {
	t.Helper()
	conversation := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		conversation = append(conversation, map[string]interface{}{
			"type": msg[0],
			"body": msg[1],
		})
	}
	return marshal(t, []map[string]interface{}{
		{
			"data": []map[string]interface{}{
				{"conversation": conversation},
			},
		},
	})
}

func marshal(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal fixture: %v", err)
	}
	return string(data)
}
