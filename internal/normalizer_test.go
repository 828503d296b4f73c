package internal

import (
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func storeRecord(id, content string) *RawRecord {
	return &RawRecord{
		Key:       "/home/user/project|" + id,
		ID:        id,
		Workspace: "/home/user/project",
		Content:   []byte(content),
		Ordinal:   1,
		Source:    SourceStore,
	}
}

func TestNormalizePairedTurn(t *testing.T) {
	content := `{"history":[{"user":{"content":{"Prompt":{"prompt":"fix bug"}}},"assistant":{"content":"done"}}]}`
	rec := storeRecord("conv1", content)

	summary, detail := Normalize(rec, VariantPairedTurn, time.Now())

	wantMessages := []Message{
		{Role: RoleUser, Body: "fix bug"},
		{Role: RoleAssistant, Body: "done"},
	}
	if !reflect.DeepEqual(detail.Messages, wantMessages) {
		t.Errorf("Messages = %+v, want %+v", detail.Messages, wantMessages)
	}
	if summary.MessageCount != 1 {
		t.Errorf("MessageCount = %d, want 1 (one history entry)", summary.MessageCount)
	}
	if summary.Preview != "fix bug" {
		t.Errorf("Preview = %q, want %q", summary.Preview, "fix bug")
	}
	if summary.Workspace != "project" {
		t.Errorf("Workspace = %q, want %q", summary.Workspace, "project")
	}
	if summary.FullPath != "/home/user/project" {
		t.Errorf("FullPath = %q, want %q", summary.FullPath, "/home/user/project")
	}
}

func TestNormalizePairedTurnResponseObject(t *testing.T) {
	content := `{"history":[{"user":{"content":{"Prompt":{"prompt":"hello"}}},"assistant":{"Response":{"content":"hi there"}}}]}`
	rec := storeRecord("conv1", content)

	_, detail := Normalize(rec, VariantPairedTurn, time.Now())

	if len(detail.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(detail.Messages))
	}
	if detail.Messages[1].Body != "hi there" {
		t.Errorf("assistant body = %q, want %q", detail.Messages[1].Body, "hi there")
	}
}

func TestNormalizePairedTurnSkipsEmptyEntries(t *testing.T) {
	content := `{"history":[{"user":{"content":{"Prompt":{"prompt":""}}}},{},{"user":{"content":{"Prompt":{"prompt":"real question"}}}}]}`
	rec := storeRecord("conv1", content)

	summary, detail := Normalize(rec, VariantPairedTurn, time.Now())

	if len(detail.Messages) != 1 {
		t.Fatalf("len(Messages) = %d, want 1", len(detail.Messages))
	}
	if detail.Messages[0].Body != "real question" {
		t.Errorf("body = %q, want %q", detail.Messages[0].Body, "real question")
	}
	if summary.MessageCount != 1 {
		t.Errorf("MessageCount = %d, want 1", summary.MessageCount)
	}
}

func TestNormalizeFlatTurnList(t *testing.T) {
	content := `{"history":[[{"content":{"Prompt":{"prompt":"first"}}}],[{"content":{"Prompt":{"prompt":"second"}}}]]}`
	rec := storeRecord("conv1", content)

	summary, detail := Normalize(rec, VariantFlatTurnList, time.Now())

	wantMessages := []Message{
		{Role: RoleUser, Body: "first"},
		{Role: RoleUser, Body: "second"},
	}
	if !reflect.DeepEqual(detail.Messages, wantMessages) {
		t.Errorf("Messages = %+v, want %+v", detail.Messages, wantMessages)
	}
	if summary.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", summary.MessageCount)
	}
	if summary.Preview != "first" {
		t.Errorf("Preview = %q, want %q", summary.Preview, "first")
	}
}

func TestNormalizeFlatTurnListToolUse(t *testing.T) {
	content := `{"history":[[{"content":{"Prompt":{"prompt":"run tests"}}},{"content":{"ToolUseResults":{"tool":"shell","output":"ok"}}}]]}`
	rec := storeRecord("conv1", content)

	summary, detail := Normalize(rec, VariantFlatTurnList, time.Now())

	if summary.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2 (prompt and tool invocation)", summary.MessageCount)
	}
	if len(detail.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(detail.Messages))
	}
	if detail.Messages[1].Role != RoleAssistant {
		t.Errorf("tool message role = %v, want %v", detail.Messages[1].Role, RoleAssistant)
	}
	if !strings.Contains(detail.Messages[1].Body, `"tool":"shell"`) {
		t.Errorf("tool message body = %q, want it to contain the tool payload", detail.Messages[1].Body)
	}
}

func TestNormalizeNestedCollection(t *testing.T) {
	content := `[{"data":[{"conversation":[{"type":"prompt","body":"question","timestamp":"2024-01-01T00:00:00Z"},{"type":"answer","body":"answer"},{"type":"prompt","body":""}]}]}]`
	rec := &RawRecord{
		Key:     "/tmp/history/chat-history-conv2.json",
		ID:      "conv2",
		Content: []byte(content),
		Source:  SourceHistory,
	}

	summary, detail := Normalize(rec, VariantNestedCollection, time.Now())

	wantMessages := []Message{
		{Role: RoleUser, Body: "question", Timestamp: "2024-01-01T00:00:00Z"},
		{Role: RoleAssistant, Body: "answer"},
	}
	if !reflect.DeepEqual(detail.Messages, wantMessages) {
		t.Errorf("Messages = %+v, want %+v", detail.Messages, wantMessages)
	}
	if summary.MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2 (empty-body message dropped)", summary.MessageCount)
	}
	if summary.Workspace != "unknown" {
		t.Errorf("Workspace = %q, want %q", summary.Workspace, "unknown")
	}
	if summary.FullPath != rec.Key {
		t.Errorf("FullPath = %q, want file path %q", summary.FullPath, rec.Key)
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	rec := storeRecord("conv1", `{"something":"else"}`)

	summary, detail := Normalize(rec, VariantUnparseable, time.Now())

	if summary.MessageCount != 0 {
		t.Errorf("MessageCount = %d, want 0", summary.MessageCount)
	}
	if summary.Preview != PreviewNoContent {
		t.Errorf("Preview = %q, want %q", summary.Preview, PreviewNoContent)
	}
	if len(detail.Messages) != 0 {
		t.Errorf("len(Messages) = %d, want 0", len(detail.Messages))
	}
}

func TestNormalizeStructurallyBrokenRecord(t *testing.T) {
	// history claims paired shape but entries have the wrong types; the
	// record collapses to zero messages instead of failing
	rec := storeRecord("conv1", `{"history":[{"user":"not-an-object"}]}`)

	summary, _ := Normalize(rec, VariantPairedTurn, time.Now())

	if summary.MessageCount != 0 {
		t.Errorf("MessageCount = %d, want 0", summary.MessageCount)
	}
	if summary.Preview != PreviewNoContent {
		t.Errorf("Preview = %q, want %q", summary.Preview, PreviewNoContent)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	content := `{"history":[{"user":{"content":{"Prompt":{"prompt":"fix bug"}}},"assistant":{"content":"done"}}]}`
	rec := storeRecord("conv1", content)
	createdAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	summary1, detail1 := Normalize(rec, VariantPairedTurn, createdAt)
	summary2, detail2 := Normalize(rec, VariantPairedTurn, createdAt)

	if !reflect.DeepEqual(summary1, summary2) {
		t.Errorf("summaries differ across calls: %+v vs %+v", summary1, summary2)
	}
	if !reflect.DeepEqual(detail1, detail2) {
		t.Errorf("details differ across calls: %+v vs %+v", detail1, detail2)
	}
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", 250)
	short := strings.Repeat("b", 50)

	tests := []struct {
		name    string
		prompt  string
		wantLen int
		exact   string
	}{
		{name: "250 chars truncates to 103", prompt: long, wantLen: 103},
		{name: "50 chars unchanged", prompt: short, exact: short},
		{name: "exactly 100 chars unchanged", prompt: strings.Repeat("c", 100), exact: strings.Repeat("c", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := storeRecord("conv1", `{"history":[{"user":{"content":{"Prompt":{"prompt":"`+tt.prompt+`"}}}}]}`)
			summary, _ := Normalize(rec, VariantPairedTurn, time.Now())

			if tt.exact != "" {
				if summary.Preview != tt.exact {
					t.Errorf("Preview = %q, want %q", summary.Preview, tt.exact)
				}
				return
			}
			if len(summary.Preview) != tt.wantLen {
				t.Errorf("len(Preview) = %d, want %d", len(summary.Preview), tt.wantLen)
			}
			if !strings.HasSuffix(summary.Preview, "...") {
				t.Errorf("Preview %q should end with ellipsis", summary.Preview)
			}
		})
	}
}

func TestPreviewTruncationMultibyte(t *testing.T) {
	// 120 CJK characters are 360 bytes; the cut must count characters and
	// land on a rune boundary.
	prompt := strings.Repeat("世", 120)
	rec := storeRecord("conv1", `{"history":[{"user":{"content":{"Prompt":{"prompt":"`+prompt+`"}}}}]}`)

	summary, _ := Normalize(rec, VariantPairedTurn, time.Now())

	if !utf8.ValidString(summary.Preview) {
		t.Fatalf("Preview is not valid UTF-8: %q", summary.Preview)
	}
	want := strings.Repeat("世", 100) + "..."
	if summary.Preview != want {
		t.Errorf("Preview = %q, want 100 characters plus ellipsis", summary.Preview)
	}
	if got := utf8.RuneCountInString(summary.Preview); got != 103 {
		t.Errorf("Preview is %d characters, want 103", got)
	}
}

func TestPreviewNoReadableContent(t *testing.T) {
	// Messages exist, but no user prompt within the scan window
	content := `{"history":[{"assistant":{"content":"unprompted answer"}}]}`
	rec := storeRecord("conv1", content)

	summary, _ := Normalize(rec, VariantPairedTurn, time.Now())

	if summary.MessageCount != 1 {
		t.Fatalf("MessageCount = %d, want 1", summary.MessageCount)
	}
	if summary.Preview != PreviewNoReadableContent {
		t.Errorf("Preview = %q, want %q", summary.Preview, PreviewNoReadableContent)
	}
}

func TestPreviewWindowFlatTurnList(t *testing.T) {
	// First five messages are tool results; the user prompt at position six
	// is outside the scan window
	content := `{"history":[[` +
		`{"content":{"ToolUseResults":{"n":1}}},` +
		`{"content":{"ToolUseResults":{"n":2}}},` +
		`{"content":{"ToolUseResults":{"n":3}}},` +
		`{"content":{"ToolUseResults":{"n":4}}},` +
		`{"content":{"ToolUseResults":{"n":5}}},` +
		`{"content":{"Prompt":{"prompt":"too late"}}}]]}`
	rec := storeRecord("conv1", content)

	summary, _ := Normalize(rec, VariantFlatTurnList, time.Now())

	if summary.Preview != PreviewNoReadableContent {
		t.Errorf("Preview = %q, want %q", summary.Preview, PreviewNoReadableContent)
	}
}
