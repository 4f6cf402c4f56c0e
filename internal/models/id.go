package models

import (
	"strings"

	"github.com/google/uuid"
)

// Ids follow the service's convention: a type prefix plus a dashless UUID,
// e.g. "user_a7f0471fb9c64a00af7b3029234cff99".

func NewUserID() string {
	return "user_" + dashless()
}

func NewConversationID() string {
	return "space_" + dashless()
}

func dashless() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
