// Package interview implements the patient conversation engine.
//
// The engine pairs a session with a clinical case through a conversation
// binding, grounds the language model in the case persona via
// [FormatPersonaPrompt], and turns each student message into a patient reply.
// Conversation memory lives exclusively in the [session.Store] transcript —
// the binding carries only the prepared persona prompt, so the transcript is
// the single source of truth for history.
package interview

import (
	"context"
	"fmt"
	"sync"

	"github.com/Y3454R/vsp-mvp/internal/casefile"
	"github.com/Y3454R/vsp-mvp/internal/session"
	"github.com/Y3454R/vsp-mvp/pkg/provider/llm"
)

// bindingKey identifies one active conversation. A composite struct key
// avoids the collision a concatenated "sessionID_caseID" string would allow
// when a session ID contains the separator.
type bindingKey struct {
	SessionID string
	CaseID    string
}

// binding is the prepared context for one (session, case) conversation.
// Its mutex serialises concurrent turns of the same conversation so appended
// turn pairs keep arrival order.
type binding struct {
	mu            sync.Mutex
	personaPrompt string
}

// Config holds the dependencies for an [Engine]. All fields are required
// except Temperature and MaxTokens, which fall back to provider defaults
// when zero.
type Config struct {
	// Cases resolves case IDs to case records.
	Cases *casefile.Repository

	// Memory stores session transcripts.
	Memory *session.Store

	// Provider is the language model backend.
	Provider llm.Provider

	// Temperature is passed through to every completion.
	Temperature float64

	// MaxTokens caps the patient reply length. Zero means provider default.
	MaxTokens int
}

// Engine produces patient replies for student messages.
// All exported methods are safe for concurrent use; turns for different
// sessions proceed in parallel, turns for the same conversation are
// serialised.
type Engine struct {
	cases       *casefile.Repository
	memory      *session.Store
	provider    llm.Provider
	temperature float64
	maxTokens   int

	mu       sync.Mutex
	bindings map[bindingKey]*binding
}

// NewEngine creates an interview [Engine] from the given configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Cases == nil {
		return nil, fmt.Errorf("interview: Cases must not be nil")
	}
	if cfg.Memory == nil {
		return nil, fmt.Errorf("interview: Memory must not be nil")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("interview: Provider must not be nil")
	}
	return &Engine{
		cases:       cfg.Cases,
		memory:      cfg.Memory,
		provider:    cfg.Provider,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		bindings:    make(map[bindingKey]*binding),
	}, nil
}

// Respond sends the student's message to the simulated patient and returns
// the patient's reply verbatim — no post-processing, no content validation.
//
// An unknown case ID fails with [casefile.ErrNotFound]. A language-model
// failure propagates to the caller; there is no retry and no fallback reply —
// a broken conversation must be visible, not papered over.
//
// On success both the student message and the reply are appended to the
// session transcript as one atomic unit.
func (e *Engine) Respond(ctx context.Context, sessionID, caseID, studentMessage string) (string, error) {
	b, err := e.resolveBinding(sessionID, caseID)
	if err != nil {
		return "", err
	}

	// One turn at a time per conversation: the history read, the model call,
	// and the append must not interleave with a concurrent turn.
	b.mu.Lock()
	defer b.mu.Unlock()

	history := e.memory.Read(sessionID)

	req := llm.CompletionRequest{
		SystemPrompt: b.personaPrompt,
		Messages:     make([]llm.Message, 0, len(history)+1),
		Temperature:  e.temperature,
		MaxTokens:    e.maxTokens,
	}
	for _, t := range history {
		req.Messages = append(req.Messages, llm.Message{
			Role:    wireRole(t.Role),
			Content: t.Content,
		})
	}
	req.Messages = append(req.Messages, llm.Message{Role: "user", Content: studentMessage})

	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("interview: patient reply for case %q: %w", caseID, err)
	}

	e.memory.Append(sessionID,
		session.Turn{Role: session.RoleStudent, Content: studentMessage},
		session.Turn{Role: session.RolePatient, Content: resp.Content},
	)

	return resp.Content, nil
}

// History returns the session's transcript in arrival order.
// An unknown session yields an empty transcript.
func (e *Engine) History(sessionID string) []session.Turn {
	return e.memory.Read(sessionID)
}

// EndSession discards the conversation binding and deletes the session's
// transcript. Ending an unknown session is a no-op.
func (e *Engine) EndSession(sessionID, caseID string) {
	e.mu.Lock()
	delete(e.bindings, bindingKey{SessionID: sessionID, CaseID: caseID})
	e.mu.Unlock()

	e.memory.Delete(sessionID)
}

// resolveBinding returns the conversation binding for (sessionID, caseID),
// creating it lazily on first use. At most one binding exists per pair.
func (e *Engine) resolveBinding(sessionID, caseID string) (*binding, error) {
	key := bindingKey{SessionID: sessionID, CaseID: caseID}

	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.bindings[key]; ok {
		return b, nil
	}

	c, err := e.cases.Get(caseID)
	if err != nil {
		return nil, err
	}

	b := &binding{personaPrompt: FormatPersonaPrompt(c)}
	e.bindings[key] = b
	return b, nil
}

// wireRole maps a transcript role to the chat-completion wire role.
func wireRole(r session.Role) string {
	if r == session.RolePatient {
		return "assistant"
	}
	return "user"
}
