package runtime

import (
	"message-hub/contract"

	"github.com/google/uuid"
)

var _ contract.IDGenerator = UUIDGenerator{}

// UUIDGenerator is the default unique-id collaborator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
