package list

import "fmt"

// TaskStore is the slice of the task repository the cascade needs.
type TaskStore interface {
	DeleteByList(listID string) error
}

type ServiceInterface interface {
	GetAll(ownerID string) ([]*List, error)
	Create(title, ownerID string) (*List, error)
	GetByID(id, ownerID string) (*List, error)
	Update(id, ownerID string, upd Update) (*List, error)
	Delete(id, ownerID string) (*List, error)
}

type Service struct {
	Repo  Repository
	Tasks TaskStore
}

func NewService(repo Repository, tasks TaskStore) *Service {
	return &Service{Repo: repo, Tasks: tasks}
}

func (s *Service) GetAll(ownerID string) ([]*List, error) {
	return s.Repo.GetByOwner(ownerID)
}

func (s *Service) Create(title, ownerID string) (*List, error) {
	newList := &List{
		Title:   title,
		OwnerID: ownerID,
	}
	if err := s.Repo.Create(newList); err != nil {
		return nil, err
	}
	return newList, nil
}

func (s *Service) GetByID(id, ownerID string) (*List, error) {
	return s.Repo.GetByID(id, ownerID)
}

func (s *Service) Update(id, ownerID string, upd Update) (*List, error) {
	return s.Repo.Update(id, ownerID, upd)
}

// Delete removes the list and waits for its tasks to go with it; the delete
// is not acknowledged while orphaned tasks may still exist.
func (s *Service) Delete(id, ownerID string) (*List, error) {
	deleted, err := s.Repo.Delete(id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.Tasks.DeleteByList(deleted.ID); err != nil {
		return nil, fmt.Errorf("failed to cascade task delete: %w", err)
	}

	return deleted, nil
}
