package state

import "github.com/lalith-99/teamchat/internal/models"

type UserRetrieved struct {
	userAction
	User models.User
}

type UsersRetrieved struct {
	userAction
	Users []models.User
}

type UserUpdated struct {
	userAction
	User models.User
}

type UserRemoved struct {
	userAction
	UserID string
}

// UserFetchFailed records a failed fetch. No slice stores it; it exists so
// the failure flows through the dispatch path like every other outcome.
type UserFetchFailed struct {
	userAction
	UserID string
	Err    error
}

// UserState is the normalized user collection, keyed by user id.
type UserState struct {
	Users map[string]models.User
}

func newUserState() UserState {
	return UserState{Users: make(map[string]models.User)}
}

func (s UserState) clone() UserState {
	next := UserState{Users: make(map[string]models.User, len(s.Users))}
	for id, u := range s.Users {
		next.Users[id] = u
	}
	return next
}

func reduceUsers(action UserAction, s *UserState) {
	switch a := action.(type) {
	case UserRetrieved:
		s.Users[a.User.ID] = a.User
	case UsersRetrieved:
		for _, u := range a.Users {
			s.Users[u.ID] = u
		}
	case UserUpdated:
		s.Users[a.User.ID] = a.User
	case UserRemoved:
		delete(s.Users, a.UserID)
	default:
	}
}
