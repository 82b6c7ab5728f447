package scripts

import (
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNoSession is returned when a user has no generated scripts yet.
var ErrNoSession = errors.New("no scripts generated yet")

// ErrScriptIndex is returned for script numbers outside the stored set.
var ErrScriptIndex = errors.New("script number out of range")

// Session is the latest script set generated for a user.
type Session struct {
	Project   Project
	Scripts   []Script
	CreatedAt time.Time
}

// Script returns the script with the 1-based number n.
func (s *Session) Script(n int) (Script, error) {
	if n < 1 || n > len(s.Scripts) {
		return Script{}, fmt.Errorf("%w: %d (have %d)", ErrScriptIndex, n, len(s.Scripts))
	}

	return s.Scripts[n-1], nil
}

// Store holds the latest Session per user in an LRU cache.
type Store struct {
	*lru.Cache[string, *Session]
}

// NewStore creates a Store with room for size users.
func NewStore(size int) (*Store, error) {
	c, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, err
	}

	return &Store{Cache: c}, nil
}

// Put replaces the session for user.
func (s *Store) Put(user string, session *Session) {
	s.Cache.Add(user, session)
}

// Session returns the session for user.
func (s *Store) Session(user string) (*Session, error) {
	sess, ok := s.Cache.Get(user)
	if !ok {
		return nil, ErrNoSession
	}

	return sess, nil
}

// Lookup returns the project and the 1-based script n for user.
func (s *Store) Lookup(user string, n int) (Project, Script, error) {
	sess, err := s.Session(user)
	if err != nil {
		return Project{}, Script{}, err
	}

	script, err := sess.Script(n)
	if err != nil {
		return Project{}, Script{}, err
	}

	return sess.Project, script, nil
}
