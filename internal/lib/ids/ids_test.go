package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransactionID(t *testing.T) {
	id := NewTransactionID()
	assert.Regexp(t, `^tx_\d{13}_[a-z0-9]{7}$`, id)
}

func TestNewVerificationID(t *testing.T) {
	id := NewVerificationID()
	assert.Regexp(t, `^ver_\d{13}_[a-z0-9]{7}$`, id)
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTransactionID()
		assert.False(t, seen[id], "duplicate id: %s", id)
		seen[id] = true
	}
}
