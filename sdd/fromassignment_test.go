package sdd

import "testing"

func TestFromAssignmentPinsOneVariable(t *testing.T) {
	u, err := NewUniverse([]Assignment{
		{"p": 0, "q": 0},
		{"p": 0, "q": 1},
		{"p": 1, "q": 0},
		{"p": 1, "q": 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pTrue, err := FromAssignment(u, "p", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pTrue.Len() != 2 {
		t.Fatalf("expected 2 states with p=1, got %d", pTrue.Len())
	}
	for _, id := range pTrue.States() {
		v, _ := u.Value(id, "p")
		if v != 1 {
			t.Fatalf("state %d has p=%d, expected 1", id, v)
		}
	}
}

func TestFromAssignmentUnknownVariable(t *testing.T) {
	u := flipFlopUniverse(t)
	_, err := FromAssignment(u, "nope", 1)
	if err != ErrUnknownVariable {
		t.Fatalf("expected ErrUnknownVariable, got %v", err)
	}
}

func TestFromAssignmentBadValue(t *testing.T) {
	u := flipFlopUniverse(t)
	_, err := FromAssignment(u, "p", 2)
	if err != ErrBadAssignment {
		t.Fatalf("expected ErrBadAssignment, got %v", err)
	}
}
