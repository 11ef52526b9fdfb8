package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AvatarColors represents the available avatar background colors
var AvatarColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
}

// GenerateAvatarWithInitials builds a DiceBear avatar URL for records
// created without an image.
func GenerateAvatarWithInitials(initials string) string {
	colorIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(AvatarColors))))
	color := AvatarColors[colorIndex.Int64()]

	return fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s&backgroundColor=%s",
		initials, color)
}

// GetInitialsFromName extracts initials from a display name
func GetInitialsFromName(name string) string {
	if name == "" {
		return "U"
	}

	words := []rune(name)
	initials := string(words[0])

	for i, char := range words {
		if char == ' ' && i+1 < len(words) {
			initials += string(words[i+1])
			break
		}
	}

	if len(initials) == 1 {
		initials += initials
	}

	return initials
}
