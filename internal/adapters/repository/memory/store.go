// Package memory keeps every ledger in process memory behind one lock.
// It backs single-instance deployments (STORAGE=memory) and the service and
// handler tests. Counters are always derived from the ledgers on read.
package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
)

type Store struct {
	mu sync.RWMutex

	users       map[uuid.UUID]*domain.User
	usersByName map[string]uuid.UUID
	polls       map[uuid.UUID]*domain.Poll
	votes       map[uuid.UUID]map[uuid.UUID]*domain.Vote
	likes       map[uuid.UUID][]*domain.Like
	comments    map[uuid.UUID][]*domain.Comment
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*domain.User),
		usersByName: make(map[string]uuid.UUID),
		polls:       make(map[uuid.UUID]*domain.Poll),
		votes:       make(map[uuid.UUID]map[uuid.UUID]*domain.Vote),
		likes:       make(map[uuid.UUID][]*domain.Like),
		comments:    make(map[uuid.UUID][]*domain.Comment),
	}
}

func (s *Store) Polls() ports.PollRepository             { return &pollRepository{s: s} }
func (s *Store) Votes() ports.VoteRepository             { return &voteRepository{s: s} }
func (s *Store) Likes() ports.LikeRepository             { return &likeRepository{s: s} }
func (s *Store) Comments() ports.CommentRepository       { return &commentRepository{s: s} }
func (s *Store) Users() ports.UserRepository             { return &userRepository{s: s} }
func (s *Store) PollResults() ports.PollResultRepository { return &pollResultRepository{s: s} }

func (s *Store) usernameLocked(id uuid.UUID) string {
	if u, ok := s.users[id]; ok {
		return u.Username
	}
	return "Unknown"
}

func copyPoll(p *domain.Poll) *domain.Poll {
	cp := *p
	cp.Options = append([]string(nil), p.Options...)
	return &cp
}
