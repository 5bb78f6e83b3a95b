package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"taskmanager/internal/config"
	"taskmanager/pkg/handlers"
	"taskmanager/pkg/list"
	"taskmanager/pkg/middleware"
	"taskmanager/pkg/session"
	"taskmanager/pkg/task"
	"taskmanager/pkg/token"
	"taskmanager/pkg/user"
)

// Mongo object ids on the wire.
const hexID = "[a-fA-F0-9]{24}"

func InitRoutes(r *mux.Router, db *sql.DB, mongoDB *mongo.Database, logger *slog.Logger) {

	tokens := token.NewManager([]byte(os.Getenv("JWT_SECRET")), token.AccessTokenTTL)
	sessionRepo := session.NewMySQLSessionRepo(db)
	userRepo := user.NewMySQLRepo(db)

	userService := user.NewService(userRepo, sessionRepo, tokens)
	userHandler := handlers.NewUserHandler(userService, logger)

	listRepo := list.NewMongoRepo(mongoDB)
	taskRepo := task.NewMongoRepo(mongoDB)

	listService := list.NewService(listRepo, taskRepo)
	taskService := task.NewService(taskRepo, listRepo)
	listHandler := handlers.NewListHandler(listService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	/* signup and login, no gate */
	r.HandleFunc("/users", userHandler.Signup).Methods("POST").Name("signup")
	r.HandleFunc("/users/login", userHandler.Login).Methods("POST").Name("login")

	/* refresh-session gate */
	meRouter := r.PathPrefix("/users/me").Subrouter()
	meRouter.Use(middleware.VerifySession(userRepo, sessionRepo))
	meRouter.HandleFunc("/access-token", userHandler.AccessToken).Methods("GET")

	/* access-token gate; ownership is checked again inside the services */
	listsRouter := r.PathPrefix("/lists").Subrouter()
	listsRouter.Use(middleware.Authenticate(tokens))

	listsRouter.HandleFunc("", listHandler.GetLists).Methods("GET")
	listsRouter.HandleFunc("", listHandler.CreateList).Methods("POST")
	listsRouter.HandleFunc("/{list_id:"+hexID+"}", listHandler.GetList).Methods("GET")
	listsRouter.HandleFunc("/{list_id:"+hexID+"}", listHandler.UpdateList).Methods("PATCH")
	listsRouter.HandleFunc("/{list_id:"+hexID+"}", listHandler.DeleteList).Methods("DELETE")

	listsRouter.HandleFunc("/{list_id:"+hexID+"}/tasks", taskHandler.GetTasks).Methods("GET")
	listsRouter.HandleFunc("/{list_id:"+hexID+"}/tasks", taskHandler.CreateTask).Methods("POST")
	listsRouter.HandleFunc("/{list_id:"+hexID+"}/tasks/{task_id:"+hexID+"}", taskHandler.GetTask).Methods("GET")
	listsRouter.HandleFunc("/{list_id:"+hexID+"}/tasks/{task_id:"+hexID+"}", taskHandler.UpdateTask).Methods("PATCH")
	listsRouter.HandleFunc("/{list_id:"+hexID+"}/tasks/{task_id:"+hexID+"}", taskHandler.DeleteTask).Methods("DELETE")
}

func StartServer(r *mux.Router) {
	addr := ":" + config.Port()
	fmt.Println("\n\033[32m", "The server is running on http://localhost"+addr, "\033[0m")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
