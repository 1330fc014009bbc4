package session

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	fresh, err := store.Get(ctx, "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.LastOrigin != "" {
		t.Errorf("fresh state should be empty, got %+v", fresh)
	}

	state := &State{LastOrigin: "hebbal", LastDestination: "majestic", LastCity: "bengaluru"}
	if err := store.Set(ctx, "user-1", state); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if loaded.LastOrigin != "hebbal" || loaded.LastCity != "bengaluru" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestQuestionRotation(t *testing.T) {
	state := &State{}

	var indexes []int
	for i := 0; i < 5; i++ {
		indexes = append(indexes, state.NextQuestionIndex("parse", 3))
	}

	want := []int{0, 1, 2, 0, 1}
	for i := range want {
		if indexes[i] != want[i] {
			t.Fatalf("rotation = %v, want %v", indexes, want)
		}
	}

	// Topics rotate independently.
	if index := state.NextQuestionIndex("resolution", 2); index != 0 {
		t.Errorf("new topic index = %d, want 0", index)
	}
}

func TestStateBinaryRoundTrip(t *testing.T) {
	state := &State{
		LastOrigin:      "hebbal",
		LastDestination: "majestic",
		LastCity:        "bengaluru",
		QuestionIndex:   map[string]int{"parse": 2},
	}

	data, err := state.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var decoded State
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}

	if decoded.LastOrigin != state.LastOrigin || decoded.QuestionIndex["parse"] != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}
