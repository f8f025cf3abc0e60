package x11

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// atomCache maintains a two-way mapping between atom names and X11 atoms to
// avoid re-requesting them from the X server repeatedly.
type atomCache struct {
	conn  *xgb.Conn
	mu    sync.RWMutex
	data  map[string]xproto.Atom
	names map[xproto.Atom]string
}

func newAtomCache(conn *xgb.Conn) *atomCache {
	return &atomCache{
		conn:  conn,
		data:  make(map[string]xproto.Atom),
		names: make(map[xproto.Atom]string),
	}
}

// Get returns the atom with the associated name, interning it on a miss.
func (c *atomCache) Get(name string) (xproto.Atom, error) {
	c.mu.RLock()
	if atom, ok := c.data[name]; ok {
		c.mu.RUnlock()
		return atom, nil
	}
	c.mu.RUnlock()

	reply, err := xproto.InternAtom(c.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = reply.Atom
	c.names[reply.Atom] = name
	return reply.Atom, nil
}

// Name returns the name of the given atom, querying the server on a miss.
func (c *atomCache) Name(atom xproto.Atom) (string, error) {
	c.mu.RLock()
	if name, ok := c.names[atom]; ok {
		c.mu.RUnlock()
		return name, nil
	}
	c.mu.RUnlock()

	reply, err := xproto.GetAtomName(c.conn, atom).Reply()
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names[atom] = reply.Name
	c.data[reply.Name] = atom
	return reply.Name, nil
}
