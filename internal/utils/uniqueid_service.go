package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// shortCodeAlphabet is the alphabet used for workspace and channel short codes.
const shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

// UniqueIDService provides ID generation functionality
type UniqueIDService struct{}

// NewUniqueIDService creates a new UniqueIDService
func NewUniqueIDService() *UniqueIDService {
	return &UniqueIDService{}
}

// GenerateWorkspaceID creates a workspace short code: "TO" followed by 7
// random characters from [A-Z0-9]. Example output: TO4K2M9QX
func (s *UniqueIDService) GenerateWorkspaceID() (string, error) {
	code, err := gonanoid.Generate(shortCodeAlphabet, 7)
	if err != nil {
		return "", fmt.Errorf("failed to generate workspace id: %w", err)
	}
	return "TO" + code, nil
}

// GenerateChannelID creates a channel short code: "CO" followed by 7 random
// characters from [A-Z0-9]. Example output: CO7PQ31ZD
func (s *UniqueIDService) GenerateChannelID() (string, error) {
	code, err := gonanoid.Generate(shortCodeAlphabet, 7)
	if err != nil {
		return "", fmt.Errorf("failed to generate channel id: %w", err)
	}
	return "CO" + code, nil
}

// GenerateID creates a row ID with the following pattern:
//   - First character is the provided prefix (e.g., 'M' for membership)
//   - Followed by 2 random digits [0-9]
//   - Followed by 9 random alphanumeric [0-9a-z]
//
// Example output with prefix 'M': M12ABC345XY
func (s *UniqueIDService) GenerateID(prefix string) (string, error) {
	digits := "0123456789"
	alnum := "0123456789abcdefghijklmnopqrstuvwxyz"

	twoDigits, err := gonanoid.Generate(digits, 2)
	if err != nil {
		return "", fmt.Errorf("failed to generate two digits: %w", err)
	}

	nineAlnum, err := gonanoid.Generate(alnum, 9)
	if err != nil {
		return "", fmt.Errorf("failed to generate alphanumeric part: %w", err)
	}

	return strings.ToUpper(prefix + twoDigits + nineAlnum), nil
}

// GenerateInvitationToken returns 32 random bytes hex-encoded (64 chars).
// Invitation tokens act as bearer credentials for joining a workspace, so
// they come straight from crypto/rand.
func (s *UniqueIDService) GenerateInvitationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Global instance of UniqueIDService
var UniqueIDSvc = NewUniqueIDService()

// Compatibility helpers for call sites that don't hold the service.
func GenerateUniqueID(prefix string) (string, error) {
	return UniqueIDSvc.GenerateID(prefix)
}

func GenerateWorkspaceID() (string, error) {
	return UniqueIDSvc.GenerateWorkspaceID()
}

func GenerateChannelID() (string, error) {
	return UniqueIDSvc.GenerateChannelID()
}

func GenerateInvitationToken() (string, error) {
	return UniqueIDSvc.GenerateInvitationToken()
}
