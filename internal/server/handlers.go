package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/achievements/internal/filter"
	"github.com/mesh-intelligence/achievements/internal/query"
	"github.com/mesh-intelligence/achievements/pkg/types"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) list(c *gin.Context) {
	state, err := filter.ParseQuery(c.Request.URL.Query())
	if err != nil {
		s.fail(c, err)
		return
	}
	recs, err := s.facade.FetchAll(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, filter.Apply(recs, state))
}

func (s *Server) get(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	rec, err := s.facade.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) create(c *gin.Context) {
	var in types.AchievementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return
	}
	rec, err := s.facade.Create(c.Request.Context(), in)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// update takes the id from the path; an id in the body is ignored.
func (s *Server) update(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	var in types.AchievementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return
	}
	rec, err := s.facade.Update(c.Request.Context(), in.WithID(id))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) delete(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	res, err := s.facade.Delete(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody{Error: types.ErrInvalidID.Error()})
		return 0, false
	}
	return id, true
}

// fail maps err onto a status code and writes the error body.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorBody{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, types.ErrInvalidID):
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, types.ErrStorageCorrupt):
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
	case errors.Is(err, types.ErrStorageUnavailable),
		errors.Is(err, query.ErrClosed),
		errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, errorBody{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorBody{Error: err.Error()})
	}
}
