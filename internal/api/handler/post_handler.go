package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/api/metrics"
	"github.com/inkwell/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string             false  "Replays the first response for a repeated key"
// @Param        body             body      createPostRequest  true   "Post details"
// @Success      201              {object}  domain.Post
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Create(c.Request().Context(), toCreatePostInput(req))
	if err != nil {
		return err
	}

	metrics.PostWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, post)
}

// List handles GET /posts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        items_per_page  query     int     false  "Page size (default 10, max 100)"
// @Param        page            query     int     false  "1-based page number"
// @Param        search          query     string  false  "Substring of title, summary or content"
// @Success      200             {object}  postListResponse
// @Failure      500             {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Update handles PUT /posts/:id. Nested owner fields rewrite the linked user.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.Update(c.Request().Context(), id, toUpdatePostInput(req))
	if err != nil {
		return err
	}

	metrics.PostWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id and returns the removed post.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.PostWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, post)
}
