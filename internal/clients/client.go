package clients

import "sync"

// A virtual room clients occupy.
type Area struct {
	ID           int
	Name         string
	Abbreviation string
}

// Client is the per-connection state of one player.
//
// The effect flags are only written by moderator commands while handling
// a request for the owning session.
type Client struct {
	ID       int
	IPID     int
	HDID     string
	Name     string // OOC name
	CharName string
	IsMod    bool
	Area     *Area

	Disemvowel bool
	Shaken     bool
	Gimp       bool
	Rainbow    bool
	Dank       bool

	mu  sync.Mutex
	ooc []string
	out func(string)
}

// Routes OOC replies to fn in addition to keeping them in the client's history.
func (c *Client) OnOOC(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = fn
}

// Sends an out-of-character server message to this client.
func (c *Client) SendOOC(message string) {
	c.mu.Lock()
	c.ooc = append(c.ooc, message)
	out := c.out
	c.mu.Unlock()

	if out != nil {
		out(message)
	}
}

// Returns every OOC message sent to this client, oldest first.
func (c *Client) OOCHistory() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.ooc...)
}

// Returns the most recent OOC message or an empty string.
func (c *Client) LastOOC() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.ooc) == 0 {
		return ""
	}
	return c.ooc[len(c.ooc)-1]
}

// Abbreviation of the client's current area, empty if the client is nowhere.
func (c *Client) AreaAbbreviation() string {
	if c.Area == nil {
		return ""
	}
	return c.Area.Abbreviation
}
