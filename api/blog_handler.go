package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/inkwell-backend/database"
	"github.com/inkwell-app/inkwell-backend/errs"
	"github.com/inkwell-app/inkwell-backend/models"
	"github.com/inkwell-app/inkwell-backend/storage"
)

// formParseOverhead is headroom on top of the image ceiling for the
// multipart framing and text fields.
const formParseOverhead = 512 << 10

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     database.PostRepo
	images    *storage.ImageStore
	views     *Views
}

func newBlogHandler(posts database.PostRepo, images *storage.ImageStore, views *Views) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
		images:    images,
		views:     views,
	}
}

type mainPageData struct {
	Posts  []models.BlogPost
	Viewer string
}

type blogPostPageData struct {
	Post   models.BlogPost
	Viewer string
}

// listPosts renders the main page with posts in ascending creation order.
// Optional query params: after (createdAt cursor, epoch millis) and limit.
func (h blogHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var page database.Page
		if after := r.URL.Query().Get("after"); after != "" {
			cursor, err := strconv.ParseInt(after, 10, 64)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid after cursor"))
				return
			}
			page.After = cursor
		}
		if limit := r.URL.Query().Get("limit"); limit != "" {
			n, err := strconv.ParseInt(limit, 10, 64)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid limit"))
				return
			}
			page.Limit = n
		}

		posts, err := h.posts.FindAll(r.Context(), page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		identity, _ := identityFromCtx(r.Context())
		data := mainPageData{Posts: posts, Viewer: identity.UID}
		if err := h.views.Render(w, http.StatusOK, "mainPage", data); err != nil {
			h.logger.Error().Err(err).Msg("failed to render main page")
		}
	}
}

func (h blogHandler) showCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.views.Render(w, http.StatusOK, "writePage", nil); err != nil {
			h.logger.Error().Err(err).Msg("failed to render write page")
		}
	}
}

// createPost accepts a multipart form with title, description, content and
// an optional image. uid and author always come from the verified session
// identity, never from the client.
func (h blogHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing session identity"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadSize+formParseOverhead)
		if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.responder.WriteError(w, errs.NewRequestTooLargeError(storage.MaxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		var imagePath string
		if files := r.MultipartForm.File["image"]; len(files) > 0 {
			path, err := h.images.Save(files[0])
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalError("failed to store image"))
				h.logger.Error().Err(err).Msg("image store failure")
				return
			}
			imagePath = path
		}

		post := &models.BlogPost{
			Title:       r.PostFormValue("title"),
			Description: r.PostFormValue("description"),
			Content:     r.PostFormValue("content"),
			UID:         identity.UID,
			Author:      identity.Email,
			ImageFile:   imagePath,
		}

		if err := h.posts.Add(r.Context(), post); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": "Blog post created!",
			"post":    post,
		})
	}
}

// showPost renders one post looked up by its denormalized id. A miss
// renders the error view with a 404, matching the browsing flow.
func (h blogHandler) showPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "postID")
		if id == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing post id"))
			return
		}

		post, err := h.posts.FindByPostID(r.Context(), id)
		if errs.IsNotFound(err) {
			page := errorPage{ErrCode: http.StatusNotFound, Message: "Page not found."}
			if err := h.views.Render(w, http.StatusNotFound, "error", page); err != nil {
				h.logger.Error().Err(err).Msg("failed to render error view")
			}
			return
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		identity, _ := identityFromCtx(r.Context())
		data := blogPostPageData{Post: *post, Viewer: identity.UID}
		if err := h.views.Render(w, http.StatusOK, "blogPost", data); err != nil {
			h.logger.Error().Err(err).Msg("failed to render post view")
		}
	}
}

type nextPostRequest struct {
	CurrentPostID string `json:"currentPostId"`
}

// nextPost returns the immediate successor of the given post in creation
// order, wrapping around to the earliest post after the last one.
func (h blogHandler) nextPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nextPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.CurrentPostID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("currentPostId is required"))
			return
		}

		next, err := h.posts.FindNext(r.Context(), req.CurrentPostID)
		if errs.IsNoPosts(err) {
			h.responder.WriteJSON(w, http.StatusNotFound, map[string]string{
				"message": "No posts available.",
			})
			return
		}
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, next)
	}
}

type updatePostRequest map[string]any

// updatePost patches a post by native identifier. The patch is filtered
// through the field whitelist before it reaches the store, so identity and
// timestamp fields cannot be overwritten.
func (h blogHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		id, _ := body["id"].(string)
		if id == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("id is required"))
			return
		}

		patch := database.FilterPatch(body)
		if len(patch) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("no updatable fields in request"))
			return
		}

		if err := h.posts.UpdateFields(r.Context(), id, patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Update successful.",
		})
	}
}
