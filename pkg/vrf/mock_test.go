package vrf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type delivery struct {
	requestID string
	words     []uint64
}

func TestMockCoordinatorDeliversFixedWords(t *testing.T) {
	deliveries := make(chan delivery, 1)

	m := NewMockCoordinator(time.Millisecond)
	m.SetFulfiller(FulfillerFunc(func(ctx context.Context, requestID string, randomWords []uint64) error {
		deliveries <- delivery{requestID: requestID, words: randomWords}
		return nil
	}))
	m.SetNextWords([]uint64{42})

	requestID, err := m.RequestRandomWords(context.Background(), Request{NumWords: 1})
	require.NoError(t, err)
	require.NotEmpty(t, requestID)

	select {
	case d := <-deliveries:
		require.Equal(t, requestID, d.requestID)
		require.Equal(t, []uint64{42}, d.words)
	case <-time.After(2 * time.Second):
		t.Fatal("fulfillment never delivered")
	}
}

func TestMockCoordinatorGeneratesWords(t *testing.T) {
	deliveries := make(chan delivery, 1)

	m := NewMockCoordinator(time.Millisecond)
	m.SetFulfiller(FulfillerFunc(func(ctx context.Context, requestID string, randomWords []uint64) error {
		deliveries <- delivery{requestID: requestID, words: randomWords}
		return nil
	}))

	_, err := m.RequestRandomWords(context.Background(), Request{NumWords: 3})
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		require.Len(t, d.words, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("fulfillment never delivered")
	}
}

func TestMockCoordinatorMintsDistinctHandles(t *testing.T) {
	m := NewMockCoordinator(0)

	first, err := m.RequestRandomWords(context.Background(), Request{NumWords: 1})
	require.NoError(t, err)
	second, err := m.RequestRandomWords(context.Background(), Request{NumWords: 1})
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestMockCoordinatorWithoutFulfiller(t *testing.T) {
	m := NewMockCoordinator(0)

	// no fulfiller bound: the request is accepted and silently undeliverable
	requestID, err := m.RequestRandomWords(context.Background(), Request{NumWords: 1})
	require.NoError(t, err)
	require.NotEmpty(t, requestID)
}

func TestMockCoordinatorConsumesNextWordsOnce(t *testing.T) {
	deliveries := make(chan delivery, 2)

	m := NewMockCoordinator(time.Millisecond)
	m.SetFulfiller(FulfillerFunc(func(ctx context.Context, requestID string, randomWords []uint64) error {
		deliveries <- delivery{requestID: requestID, words: randomWords}
		return nil
	}))
	m.SetNextWords([]uint64{7})

	_, err := m.RequestRandomWords(context.Background(), Request{NumWords: 1})
	require.NoError(t, err)
	_, err = m.RequestRandomWords(context.Background(), Request{NumWords: 1})
	require.NoError(t, err)

	var got [][]uint64
	for i := 0; i < 2; i++ {
		select {
		case d := <-deliveries:
			got = append(got, d.words)
		case <-time.After(2 * time.Second):
			t.Fatal("fulfillment never delivered")
		}
	}

	// one delivery carries the fixed words, the other is generated
	require.Contains(t, got, []uint64{7})
}
