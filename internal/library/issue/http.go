// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package issue

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/longboxhq/longbox/internal/platform/request"
	"github.com/longboxhq/longbox/internal/platform/respond"
	"github.com/longboxhq/longbox/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the issue routes. The router is expected to be
// nested under /series/{seriesID}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listIssues)
	router.Post("/", handler.createIssue)

	router.Get("/{issueID}", handler.getIssue)
	router.Patch("/{issueID}", handler.updateIssue)
	router.Delete("/{issueID}", handler.deleteIssue)
}

func (handler *Handler) listIssues(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.IntParam(request, "seriesID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	filter := Filter{
		StoryArc: request.URL.Query().Get("story_arc"),
	}

	items, nextToken, err := handler.service.List(request.Context(), seriesID, filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, items, nextToken)
}

func (handler *Handler) getIssue(writer http.ResponseWriter, request *http.Request) {
	seriesID, issueID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	i, err := handler.service.Get(request.Context(), seriesID, issueID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, i)
}

func (handler *Handler) createIssue(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.IntParam(request, "seriesID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	i, err := handler.service.Create(request.Context(), seriesID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, i)
}

func (handler *Handler) updateIssue(writer http.ResponseWriter, request *http.Request) {
	seriesID, issueID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Patch
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	i, err := handler.service.Update(request.Context(), seriesID, issueID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, i)
}

func (handler *Handler) deleteIssue(writer http.ResponseWriter, request *http.Request) {
	seriesID, issueID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), seriesID, issueID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) pathIDs(request *http.Request) (seriesID, issueID int64, err error) {
	seriesID, err = requestutil.IntParam(request, "seriesID")
	if err != nil {
		return 0, 0, err
	}
	issueID, err = requestutil.IntParam(request, "issueID")
	if err != nil {
		return 0, 0, err
	}
	return seriesID, issueID, nil
}
