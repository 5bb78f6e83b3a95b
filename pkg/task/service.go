package task

import "taskmanager/pkg/list"

// ListChecker resolves a list under the caller's ownership. A miss means the
// whole task operation is rejected as not-found.
type ListChecker interface {
	GetByID(id, ownerID string) (*list.List, error)
}

type ServiceInterface interface {
	GetAll(listID, ownerID string) ([]*Task, error)
	Create(title, listID, ownerID string) (*Task, error)
	GetByID(id, listID, ownerID string) (*Task, error)
	Update(id, listID, ownerID string, upd Update) (*Task, error)
	Delete(id, listID, ownerID string) (*Task, error)
}

type Service struct {
	Repo  Repository
	Lists ListChecker
}

func NewService(repo Repository, lists ListChecker) *Service {
	return &Service{Repo: repo, Lists: lists}
}

// checkList re-verifies list ownership on every call; the result is never
// cached across requests.
func (s *Service) checkList(listID, ownerID string) error {
	_, err := s.Lists.GetByID(listID, ownerID)
	return err
}

func (s *Service) GetAll(listID, ownerID string) ([]*Task, error) {
	if err := s.checkList(listID, ownerID); err != nil {
		return nil, err
	}
	return s.Repo.GetByList(listID)
}

func (s *Service) Create(title, listID, ownerID string) (*Task, error) {
	if err := s.checkList(listID, ownerID); err != nil {
		return nil, err
	}

	newTask := &Task{
		Title:  title,
		ListID: listID,
	}
	if err := s.Repo.Create(newTask); err != nil {
		return nil, err
	}
	return newTask, nil
}

func (s *Service) GetByID(id, listID, ownerID string) (*Task, error) {
	if err := s.checkList(listID, ownerID); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id, listID)
}

func (s *Service) Update(id, listID, ownerID string, upd Update) (*Task, error) {
	if err := s.checkList(listID, ownerID); err != nil {
		return nil, err
	}
	return s.Repo.Update(id, listID, upd)
}

func (s *Service) Delete(id, listID, ownerID string) (*Task, error) {
	if err := s.checkList(listID, ownerID); err != nil {
		return nil, err
	}
	return s.Repo.Delete(id, listID)
}
