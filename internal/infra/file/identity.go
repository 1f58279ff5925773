package file

import (
	"os"
	"strconv"
	"strings"
)

// Identity reads the stored user id on demand. A missing or unreadable file
// means no identity, which downstream treats as "do not publish".
type Identity struct {
	path string
}

func NewIdentity(path string) *Identity {
	return &Identity{path: path}
}

func (i *Identity) UserID() (int, bool) {
	data, err := os.ReadFile(i.path)
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return id, true
}
