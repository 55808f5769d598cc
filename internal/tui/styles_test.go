package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKESWholeShillings(t *testing.T) {
	// 2x Ugali Beef at 5000 plus a Soda at 15000
	assert.Equal(t, "KES 250", KES(25000))
	assert.Equal(t, "KES 0", KES(0))
	assert.Equal(t, "KES 1200", KES(120000))
}

func TestKESFractional(t *testing.T) {
	assert.Equal(t, "KES 123.45", KES(12345))
}
