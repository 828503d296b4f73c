package internal

import "strings"

// AgentUnknown is the label reported when no agent can be inferred.
const AgentUnknown = "unknown"

// agentFlag is the CLI flag users pass to select an agent; a prompt
// containing it names the agent explicitly.
const agentFlag = "--agent"

// agentPhrases are lead-in phrases that, together with the token "agent",
// mark a context line as naming the active agent.
var agentPhrases = []string{"chatting with", "specialist", "you are", "with"}

const agentLabelMaxLen = 80

// ExtractAgentLabel derives a best-effort agent label for a conversation.
// Prompt bodies are scanned first for the agent-selection flag, which takes
// precedence; otherwise auxiliary-context lines are pattern-matched. Absence
// is not an error, only "unknown".
func ExtractAgentLabel(prompts, contexts []string) string {
	for _, p := range prompts {
		if name := agentFromFlag(p); name != "" {
			return "Agent: " + name
		}
	}
	for _, c := range contexts {
		if label := agentFromContext(c); label != "" {
			return label
		}
	}
	return AgentUnknown
}

// agentFromFlag returns the token following the agent-selection flag, or ""
func agentFromFlag(prompt string) string {
	idx := strings.Index(prompt, agentFlag)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimSpace(prompt[idx+len(agentFlag):])
	if rest == "" {
		return ""
	}
	if end := strings.IndexAny(rest, " \t\r\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

// agentFromContext scans free-text context for a line naming the agent and
// returns it stripped of the matched lead-in phrase, capped at 80 characters.
func agentFromContext(context string) string {
	for _, line := range strings.Split(context, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "agent") {
			continue
		}
		for _, phrase := range agentPhrases {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				continue
			}
			label := strings.TrimSpace(line[idx+len(phrase):])
			if label == "" {
				continue
			}
			if runes := []rune(label); len(runes) > agentLabelMaxLen {
				label = string(runes[:agentLabelMaxLen])
			}
			return label
		}
	}
	return ""
}
