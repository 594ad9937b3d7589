package core

import (
	"context"
	"fmt"
	"strconv"

	"medbot/internal/llm"
	"medbot/internal/triage"
	"medbot/pkg"
)

// ChatService orchestrates a chat turn: every user message is triaged first,
// emergencies get the fixed emergency template without touching the
// completion endpoint, and everything else is forwarded to the LLM together
// with the system prompt, profile context, and conversation history.
type ChatService struct {
	LLM        llm.Client
	Classifier *triage.Classifier
}

// NewChatService constructs a ChatService with the given LLM client and
// triage classifier. A nil classifier gets the default lexicon.
func NewChatService(client llm.Client, classifier *triage.Classifier) *ChatService {
	if classifier == nil {
		classifier = triage.NewClassifier(nil)
	}
	return &ChatService{LLM: client, Classifier: classifier}
}

// TurnResult is the outcome of one chat turn.
type TurnResult struct {
	Reply      string
	Assessment triage.Assessment
	Emergency  bool
}

// Reply handles one user message. History must be the prior transcript in
// chronological order, excluding the new message. On completion-endpoint
// failure a fallback reply is returned along with the error, so the caller
// can still render something.
func (s *ChatService) Reply(ctx context.Context, profile pkg.Profile, history []pkg.Message, model, content string) (TurnResult, error) {
	assessment := s.Classifier.AssessUrgency(content)

	if assessment.Tier == triage.TierEmergency {
		return TurnResult{
			Reply:      EmergencyResponse,
			Assessment: assessment,
			Emergency:  true,
		}, nil
	}

	messages := make([]llm.Message, 0, len(history)+3)
	messages = append(messages, llm.Message{Role: "system", Content: SystemPrompt})
	if pc := profileContext(profile); pc != "" {
		messages = append(messages, llm.Message{Role: "system", Content: pc})
	}
	for _, m := range history {
		messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: content})

	reply, err := s.LLM.Chat(ctx, model, messages)
	if err != nil {
		return TurnResult{Reply: FallbackReply, Assessment: assessment}, fmt.Errorf("completion call: %w", err)
	}
	return TurnResult{Reply: reply, Assessment: assessment}, nil
}

// profileContext renders the optional user profile as a system message so the
// model can tailor its answers. Returns "" when the profile is empty.
func profileContext(p pkg.Profile) string {
	if p.Age == nil && p.Gender == nil {
		return ""
	}
	age := "Not specified"
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}
	gender := "Not specified"
	if p.Gender != nil {
		gender = *p.Gender
	}
	return fmt.Sprintf("User profile: Age: %s, Gender: %s", age, gender)
}
