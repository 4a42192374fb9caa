package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issac8080/aurashop/pkg/assistantwire"
)

func TestBeginAppendsUserAndStreamingAssistant(t *testing.T) {
	tr := NewTranscript(nil)
	handle := tr.Begin("hello")

	turns := tr.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	assert.True(t, turns[1].Streaming)
	assert.Empty(t, turns[1].Content)

	handle.AppendDelta("Hi ")
	handle.AppendDelta("there")
	assert.Equal(t, "Hi there", tr.Turns()[1].Content)
}

func TestFinalizeSealsTurn(t *testing.T) {
	tr := NewTranscript(nil)
	handle := tr.Begin("q")
	handle.AppendDelta("answer")
	handle.Finalize(assistantwire.Final{
		ProductIDs: []string{"P001"},
		Actions:    []assistantwire.Action{{Type: assistantwire.ActionNavigate, Label: "Go", Payload: "/p"}},
	})

	turn := tr.Turns()[1]
	require.False(t, turn.Streaming)
	assert.Equal(t, []string{"P001"}, turn.ProductIDs)

	// Everything after finalization is dropped.
	handle.AppendDelta(" more")
	handle.SetContent("overwritten")
	handle.Finalize(assistantwire.Final{ProductIDs: []string{"P999"}})

	turn = tr.Turns()[1]
	assert.Equal(t, "answer", turn.Content)
	assert.Equal(t, []string{"P001"}, turn.ProductIDs)
}

func TestHistoryWindowAndShape(t *testing.T) {
	tr := NewTranscript(nil)
	for i := 0; i < 5; i++ {
		h := tr.Begin("question")
		h.AppendDelta("reply")
		h.Finalize(assistantwire.Final{ProductIDs: []string{"P001"}})
	}

	history := tr.History(4)
	require.Len(t, history, 4)
	for _, turn := range history {
		// Only role and content travel; ids and actions stay client-local.
		assert.NotEmpty(t, turn.Role)
		assert.NotEmpty(t, turn.Content)
	}
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)

	assert.Len(t, tr.History(0), 10)
}

func TestOnUpdateReceivesSnapshots(t *testing.T) {
	type update struct {
		index int
		turn  Turn
	}
	var updates []update
	tr := NewTranscript(func(index int, turn Turn) {
		updates = append(updates, update{index, turn})
	})

	handle := tr.Begin("q")
	handle.AppendDelta("a")
	handle.Finalize(assistantwire.Final{})

	// Begin notifies for both turns, then one delta and one finalize.
	require.Len(t, updates, 4)
	assert.Equal(t, 0, updates[0].index)
	assert.Equal(t, 1, updates[1].index)
	assert.True(t, updates[1].turn.Streaming)
	assert.Equal(t, "a", updates[2].turn.Content)
	assert.False(t, updates[3].turn.Streaming)
}

func TestAppendFinalTurn(t *testing.T) {
	tr := NewTranscript(nil)
	tr.Append(Turn{Role: RoleAssistant, Content: "welcome"})

	turns := tr.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, "welcome", turns[0].Content)
	assert.False(t, turns[0].Streaming)
}
