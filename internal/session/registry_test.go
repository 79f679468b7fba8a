package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records calls and replays canned responses
type fakeGateway struct {
	mu       sync.Mutex
	calls    int
	lastLen  int
	response string
	err      error
}

func (g *fakeGateway) SendMessage(ctx context.Context, persona llm.Persona, history []domain.Turn, message string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastLen = len(history)
	if g.err != nil {
		return "", g.err
	}
	if g.response != "" {
		return g.response, nil
	}
	return "reply to " + message, nil
}

func (g *fakeGateway) AnalyzeImage(ctx context.Context, persona llm.Persona, path, mimeType string) (string, error) {
	return "", errors.New("not used")
}

func testPersona() llm.Persona {
	return llm.NewPersona("test-model", "instruction", llm.GenerationConfig{})
}

func TestGetOrCreate_SameSession(t *testing.T) {
	r := NewRegistry(&fakeGateway{}, testPersona(), 10)

	first := r.GetOrCreate("user-1")
	second := r.GetOrCreate("user-1")

	assert.Same(t, first, second)
	assert.Equal(t, 1, r.Len())
}

func TestGetOrCreate_Concurrent(t *testing.T) {
	r := NewRegistry(&fakeGateway{}, testPersona(), 100)

	const n = 50
	sessions := make([]*Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessions[i] = r.GetOrCreate("same-new-user")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
	for i := 1; i < n; i++ {
		assert.Same(t, sessions[0], sessions[i])
	}
}

func TestSendAndAppend_GrowsByTwoTurns(t *testing.T) {
	gw := &fakeGateway{}
	r := NewRegistry(gw, testPersona(), 10)

	raw, err := r.SendAndAppend(context.Background(), "user-1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "reply to hello", raw)

	history := r.GetOrCreate("user-1").History()
	require.Len(t, history, 2)
	assert.Equal(t, domain.Turn{Role: domain.RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, domain.Turn{Role: domain.RoleModel, Content: "reply to hello"}, history[1])

	// the gateway must not have seen the new turns as prior history
	assert.Equal(t, 0, gw.lastLen)

	_, err = r.SendAndAppend(context.Background(), "user-1", "again")
	require.NoError(t, err)
	assert.Len(t, r.GetOrCreate("user-1").History(), 4)
	assert.Equal(t, 2, gw.lastLen)
}

func TestSendAndAppend_GatewayFailureLeavesHistoryUntouched(t *testing.T) {
	gw := &fakeGateway{err: &domain.GatewayError{Op: "send message", Err: errors.New("boom")}}
	r := NewRegistry(gw, testPersona(), 10)

	_, err := r.SendAndAppend(context.Background(), "user-1", "hello")
	require.Error(t, err)

	var gatewayErr *domain.GatewayError
	assert.True(t, errors.As(err, &gatewayErr))
	assert.Empty(t, r.GetOrCreate("user-1").History())
}

func TestSendAndAppend_ConcurrentSameUser(t *testing.T) {
	r := NewRegistry(&fakeGateway{}, testPersona(), 10)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.SendAndAppend(context.Background(), "user-1", fmt.Sprintf("msg-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history := r.GetOrCreate("user-1").History()
	require.Len(t, history, 2*n)

	// turns always land in user/model pairs
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, domain.RoleUser, history[i].Role)
		assert.Equal(t, domain.RoleModel, history[i+1].Role)
		assert.Equal(t, "reply to "+history[i].Content, history[i+1].Content)
	}
}

func TestEviction(t *testing.T) {
	r := NewRegistry(&fakeGateway{}, testPersona(), 3)

	a := r.GetOrCreate("a")
	r.GetOrCreate("b")
	r.GetOrCreate("c")

	// touch a so b becomes least recently used
	r.GetOrCreate("a")
	r.GetOrCreate("d")

	assert.Equal(t, 3, r.Len())
	assert.Same(t, a, r.GetOrCreate("a"))

	// b was evicted; a new session is created for it
	recreated := r.GetOrCreate("b")
	assert.Empty(t, recreated.History())
}

func TestEviction_RecreatedSessionIsFresh(t *testing.T) {
	gw := &fakeGateway{}
	r := NewRegistry(gw, testPersona(), 1)

	_, err := r.SendAndAppend(context.Background(), "a", "hello")
	require.NoError(t, err)
	require.Len(t, r.GetOrCreate("a").History(), 2)

	// creating b evicts a (cap is 1)... and then touching a evicts b
	r.GetOrCreate("b")
	assert.Empty(t, r.GetOrCreate("a").History())
}
