package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }

func TestFanout_PublishesToAll(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	boom := errors.New("boom")
	fan := Fanout{a, nil, failingPublisher{err: boom}, b}

	err := fan.Publish(context.Background(), New(ProductCreated, "m-1", "p-1", nil))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []Type{ProductCreated}, a.Types())
	assert.Equal(t, []Type{ProductCreated}, b.Types())
}

func TestNew(t *testing.T) {
	ev := New(CategoriesReordered, "m-1", "", Order{ScopeID: "", OrderedIDs: []string{"a"}})
	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "m-1", ev.MerchantID)
	assert.False(t, ev.Timestamp.IsZero())
}
