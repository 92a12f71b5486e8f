// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package copy

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

// RegisterRoutes mounts the copy routes. The router is expected to be
// nested under /issues/{issueID}.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCopies)
	router.Post("/", handler.createCopy)

	router.Get("/{copyID}", handler.getCopy)
	router.Patch("/{copyID}", handler.updateCopy)
	router.Delete("/{copyID}", handler.deleteCopy)
}

func (handler *Handler) listCopies(writer http.ResponseWriter, request *http.Request) {
	issueID, err := requestutil.IntParam(request, "issueID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	items, nextToken, err := handler.service.List(request.Context(), issueID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, items, nextToken)
}

func (handler *Handler) getCopy(writer http.ResponseWriter, request *http.Request) {
	issueID, copyID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Get(request.Context(), issueID, copyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) createCopy(writer http.ResponseWriter, request *http.Request) {
	issueID, err := requestutil.IntParam(request, "issueID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Create(request.Context(), issueID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

func (handler *Handler) updateCopy(writer http.ResponseWriter, request *http.Request) {
	issueID, copyID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Patch
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Update(request.Context(), issueID, copyID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, c)
}

func (handler *Handler) deleteCopy(writer http.ResponseWriter, request *http.Request) {
	issueID, copyID, err := handler.pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), issueID, copyID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) pathIDs(request *http.Request) (issueID, copyID int64, err error) {
	issueID, err = requestutil.IntParam(request, "issueID")
	if err != nil {
		return 0, 0, err
	}
	copyID, err = requestutil.IntParam(request, "copyID")
	if err != nil {
		return 0, 0, err
	}
	return issueID, copyID, nil
}
