package clients

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type TargetType int

const (
	TargetID TargetType = iota
	TargetIPID
	TargetHDID
	TargetOOCName
	TargetCharName
)

var ErrInvalidTargetKey = errors.New("invalid target key")

// Manager keeps track of every connected client.
type Manager struct {
	mu      sync.RWMutex
	clients map[int]*Client
}

func NewManager() *Manager {
	return &Manager{clients: make(map[int]*Client)}
}

// Registers c under the lowest free client ID and returns that ID.
func (m *Manager) Add(c *Client) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := 0
	for {
		if _, taken := m.clients[id]; !taken {
			break
		}
		id++
	}

	c.ID = id
	m.clients[id] = c

	return id
}

func (m *Manager) Remove(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.clients[c.ID]; ok && cur == c {
		delete(m.clients, c.ID)
	}
}

// Returns every connected client ordered by ID.
func (m *Manager) All() []*Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*Client, 0, len(m.clients))
	for _, c := range m.clients {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return all
}

// Resolves the clients a command is aimed at.
//
// key must be an int for TargetID and TargetIPID and a string otherwise.
// Name lookups match case-insensitively; with exact set to false a name
// only needs to contain key.
func (m *Manager) GetTargets(invoker *Client, kind TargetType, key interface{}, exact bool) ([]*Client, error) {
	var match func(c *Client) bool

	switch kind {
	case TargetID, TargetIPID:
		n, ok := key.(int)
		if !ok {
			return nil, fmt.Errorf("%w: want int, got %T", ErrInvalidTargetKey, key)
		}
		if kind == TargetID {
			match = func(c *Client) bool { return c.ID == n }
		} else {
			match = func(c *Client) bool { return c.IPID == n }
		}
	case TargetHDID, TargetOOCName, TargetCharName:
		s, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: want string, got %T", ErrInvalidTargetKey, key)
		}
		field := func(c *Client) string {
			switch kind {
			case TargetHDID:
				return c.HDID
			case TargetOOCName:
				return c.Name
			default:
				return c.CharName
			}
		}
		s = strings.ToLower(s)
		if exact || kind == TargetHDID {
			match = func(c *Client) bool { return strings.ToLower(field(c)) == s }
		} else {
			match = func(c *Client) bool { return s != "" && strings.Contains(strings.ToLower(field(c)), s) }
		}
	default:
		return nil, fmt.Errorf("%w: unknown target type %d", ErrInvalidTargetKey, kind)
	}

	targets := []*Client{}
	for _, c := range m.All() {
		if match(c) {
			targets = append(targets, c)
		}
	}

	return targets, nil
}

// Returns every connected moderator.
func (m *Manager) Mods() []*Client {
	mods := []*Client{}
	for _, c := range m.All() {
		if c.IsMod {
			mods = append(mods, c)
		}
	}
	return mods
}

func (m *Manager) ModsOnline() int {
	return len(m.Mods())
}
