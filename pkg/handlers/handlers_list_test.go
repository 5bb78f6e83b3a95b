package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskmanager/pkg/auth"
	"taskmanager/pkg/handlers"
	"taskmanager/pkg/list"
	"taskmanager/pkg/middleware"
	"taskmanager/pkg/token"
)

type mockListService struct {
	mock.Mock
}

func (m *mockListService) GetAll(ownerID string) ([]*list.List, error) {
	args := m.Called(ownerID)
	if lists := args.Get(0); lists != nil {
		return lists.([]*list.List), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) Create(title, ownerID string) (*list.List, error) {
	args := m.Called(title, ownerID)
	if l := args.Get(0); l != nil {
		return l.(*list.List), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) GetByID(id, ownerID string) (*list.List, error) {
	args := m.Called(id, ownerID)
	if l := args.Get(0); l != nil {
		return l.(*list.List), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) Update(id, ownerID string, upd list.Update) (*list.List, error) {
	args := m.Called(id, ownerID, upd)
	if l := args.Get(0); l != nil {
		return l.(*list.List), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListService) Delete(id, ownerID string) (*list.List, error) {
	args := m.Called(id, ownerID)
	if l := args.Get(0); l != nil {
		return l.(*list.List), args.Error(1)
	}
	return nil, args.Error(1)
}

const testListID = "64f000000000000000000001"

// newListRouter mirrors the real route table: the access-token gate in front
// of the list handlers.
func newListRouter(svc list.ServiceInterface, tokens *token.Manager) *mux.Router {
	h := handlers.NewListHandler(svc, testLogger())

	r := mux.NewRouter()
	lists := r.PathPrefix("/lists").Subrouter()
	lists.Use(middleware.Authenticate(tokens))
	lists.HandleFunc("", h.GetLists).Methods("GET")
	lists.HandleFunc("", h.CreateList).Methods("POST")
	lists.HandleFunc("/{list_id}", h.GetList).Methods("GET")
	lists.HandleFunc("/{list_id}", h.UpdateList).Methods("PATCH")
	lists.HandleFunc("/{list_id}", h.DeleteList).Methods("DELETE")
	return r
}

func TestListFlow(t *testing.T) {
	tokens := token.NewManager([]byte("test-secret"), token.AccessTokenTTL)

	tokenA, _, err := tokens.Issue("userA")
	assert.NoError(t, err)
	tokenB, _, err := tokens.Issue("userB")
	assert.NoError(t, err)

	svc := new(mockListService)

	// userA owns one list; for userB the same id does not exist.
	groceries := &list.List{ID: testListID, Title: "groceries", OwnerID: "userA"}
	svc.On("GetAll", "userA").Return([]*list.List{}, nil)
	svc.On("GetAll", "userB").Return(nil, errors.New("mongo down"))
	svc.On("Create", "groceries", "userA").Return(groceries, nil)
	svc.On("Update", testListID, "userA", mock.Anything).Return(groceries, nil)
	svc.On("Update", testListID, "userB", mock.Anything).Return(nil, list.ErrNotFound)

	router := newListRouter(svc, tokens)

	t.Run("fresh user has no lists", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/lists", nil)
		r.Header.Set(auth.HeaderAccessToken, tokenA)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("created list carries the caller as owner", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/lists", strings.NewReader(`{"title":"groceries"}`))
		r.Header.Set(auth.HeaderAccessToken, tokenA)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"_userId":"userA"`)
	})

	t.Run("owner can patch", func(t *testing.T) {
		r := httptest.NewRequest("PATCH", "/lists/"+testListID, strings.NewReader(`{"title":"food"}`))
		r.Header.Set(auth.HeaderAccessToken, tokenA)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other user's patch reads as not found", func(t *testing.T) {
		r := httptest.NewRequest("PATCH", "/lists/"+testListID, strings.NewReader(`{"title":"mine now"}`))
		r.Header.Set(auth.HeaderAccessToken, tokenB)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "list not found")
	})

	t.Run("storage failure is a 500, not an empty page", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/lists", nil)
		r.Header.Set(auth.HeaderAccessToken, tokenB)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal error")
	})

	t.Run("no token, no lists", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/lists", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDeleteListHandler(t *testing.T) {
	tokens := token.NewManager([]byte("test-secret"), token.AccessTokenTTL)
	tokenA, _, err := tokens.Issue("userA")
	assert.NoError(t, err)

	svc := new(mockListService)
	svc.On("Delete", testListID, "userA").Return(&list.List{ID: testListID, Title: "groceries", OwnerID: "userA"}, nil)

	router := newListRouter(svc, tokens)

	r := httptest.NewRequest("DELETE", "/lists/"+testListID, nil)
	r.Header.Set(auth.HeaderAccessToken, tokenA)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"groceries"`)
	svc.AssertCalled(t, "Delete", testListID, "userA")
}
