package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/people-api/internal/services"
	"github.com/harentsoaR/people-api/internal/store"
)

const defaultDBTimeout = 5 * time.Second

// Handler carries the services every route needs.
type Handler struct {
	People    *services.PeopleService
	Users     store.UserStore
	JWTSecret []byte
	DBTimeout time.Duration
}

func NewHandler(people *services.PeopleService, users store.UserStore, jwtSecret []byte, dbTimeout time.Duration) *Handler {
	if dbTimeout <= 0 {
		dbTimeout = defaultDBTimeout
	}
	return &Handler{
		People:    people,
		Users:     users,
		JWTSecret: jwtSecret,
		DBTimeout: dbTimeout,
	}
}

// ctx bounds a store call by the request context and DBTimeout.
func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.DBTimeout)
}
