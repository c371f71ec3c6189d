package clients

import (
	"strings"

	"github.com/samber/lo"
)

const vowels = "aeiouAEIOU"

// Rewrites an in-character message according to the sender's effect flags.
//
// Gimp wins over everything else; disemvowel runs before shake.
func ApplyChatEffects(c *Client, message string, gimpLines []string) string {
	if c.Gimp && len(gimpLines) > 0 {
		return lo.Sample(gimpLines)
	}

	if c.Disemvowel {
		message = strings.Map(func(r rune) rune {
			if strings.ContainsRune(vowels, r) {
				return -1
			}
			return r
		}, message)
	}

	if c.Shaken {
		words := strings.Fields(message)
		message = strings.Join(lo.Shuffle(words), " ")
	}

	return message
}
