package utils

import (
	"encoding/json"
	"fmt"
)

func MarshalStruct(input interface{}) (string, error) {
	bytes, err := json.Marshal(input)
	return string(bytes), err
}

// Returns "1 moderator", "2 moderators", "0 moderators".
func Plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}
