package memory

import (
	"context"
	"sort"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

func (s *Storage) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s *Storage) InsertUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	stored := *user
	stored.ID = s.nextUserID
	s.users[stored.ID] = stored
	return &stored, nil
}

func (s *Storage) UpdateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	stored := *user
	s.users[stored.ID] = stored
	return &stored, nil
}

func (s *Storage) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// DeleteUser removes the user together with every edge that references
// it: likes left on films, incoming and outgoing friendship edges.
func (s *Storage) DeleteUser(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)
	delete(s.friends, id)
	for _, set := range s.friends {
		delete(set, id)
	}
	for _, set := range s.likes {
		delete(set, id)
	}
	return nil
}

// AddFriend records the directional edge userID -> friendID. The reverse
// edge is a separate call; one side adding the other implies nothing.
func (s *Storage) AddFriend(_ context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.friends[userID]
	if !ok {
		set = make(map[int]struct{})
		s.friends[userID] = set
	}
	set[friendID] = struct{}{}
	return nil
}

func (s *Storage) RemoveFriend(_ context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.friends[userID], friendID)
	return nil
}

func (s *Storage) Friends(_ context.Context, userID int) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectFriends(s.friends[userID]), nil
}

func (s *Storage) CommonFriends(_ context.Context, userID, otherID int) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	common := make(map[int]struct{})
	other := s.friends[otherID]
	for id := range s.friends[userID] {
		if _, ok := other[id]; ok {
			common[id] = struct{}{}
		}
	}
	return s.collectFriends(common), nil
}

func (s *Storage) collectFriends(ids map[int]struct{}) []models.User {
	users := make([]models.User, 0, len(ids))
	for id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
