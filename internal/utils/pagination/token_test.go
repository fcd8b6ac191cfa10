package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "req-abc")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, "req-abc", decodedID, "Row id should match after decode")

	// Test case 2: Current time values
	now := time.Now().UTC()
	nowToken := EncodeToken(now, "req-xyz")
	decodedNow, decodedNowID, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
	assert.Equal(t, "req-xyz", decodedNowID)

	// Test case 3: Row id containing the separator character
	pipeToken := EncodeToken(createdAt, "id|with|pipes")
	_, decodedPipeID, err := DecodeToken(pipeToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, "id|with|pipes", decodedPipeID, "Only the first separator splits the token")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid timestamp
	invalidTimeToken := "bm90YWRhdGV8cmVxLTE=" // Base64 encoded "notadate|req-1"
	_, _, err = DecodeToken(invalidTimeToken)
	assert.Error(t, err, "Should return an error for invalid timestamp format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention timestamp parsing issue")

	// Test empty row id
	emptyIDToken := EncodeToken(time.Now().UTC(), "")
	_, _, err = DecodeToken(emptyIDToken)
	assert.Error(t, err, "Should return an error for an empty row id")
	assert.Contains(t, err.Error(), "empty id", "Error should mention the empty id")
}
