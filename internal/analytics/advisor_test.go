package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAdvisorWithoutKey(t *testing.T) {
	advisor, err := NewAdvisor("")
	assert.NoError(t, err)
	assert.Nil(t, advisor)
}

func TestRephraseNilAdvisor(t *testing.T) {
	var advisor *Advisor
	recs := []Recommendation{{Message: "restock beef"}}

	out := advisor.Rephrase(context.Background(), recs)
	assert.Equal(t, recs, out)
}

func TestFriendlyLabel(t *testing.T) {
	assert.Equal(t, "top seller", FriendlyLabel(ClassStar))
	assert.Equal(t, "popular item", FriendlyLabel(ClassPlowhorse))
	assert.Equal(t, "hidden gem", FriendlyLabel(ClassPuzzle))
	assert.Equal(t, "slow mover", FriendlyLabel(ClassDog))
	assert.Equal(t, "whatever", FriendlyLabel("whatever"))
}

func TestFriendlyText(t *testing.T) {
	in := "Ugali Beef is a Star item but 3 Dogs drag the menu down"
	out := FriendlyText(in)
	assert.Equal(t, "Ugali Beef is a top seller but 3 slow movers drag the menu down", out)

	// plural replaced before singular so no stray trailing letters
	assert.Equal(t, "2 hidden gems", FriendlyText("2 Puzzle items"))
}
