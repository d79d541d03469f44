// Package credentials generates the refresh secrets handed to devices
// at registration. The secret is shown to the client exactly once and
// only its bcrypt hash is stored.
package credentials

import (
	"crypto/rand"
	"encoding/hex"
)

// secretBytes gives a 64-character hex secret
const secretBytes = 32

// GenerateDeviceSecret returns a new random refresh secret
func GenerateDeviceSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
