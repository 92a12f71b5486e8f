// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package series

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listSeries)
	router.Post("/", handler.createSeries)

	router.Get("/{seriesID}", handler.getSeries)
	router.Patch("/{seriesID}", handler.updateSeries)
	router.Delete("/{seriesID}", handler.deleteSeries)
}

func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	filter := Filter{
		Publisher:   request.URL.Query().Get("publisher"),
		TitleSearch: request.URL.Query().Get("title_search"),
	}

	items, nextToken, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Page(writer, items, nextToken)
}

func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.IntParam(request, "seriesID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Get(request.Context(), seriesID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	var input CreateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, s)
}

func (handler *Handler) updateSeries(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.IntParam(request, "seriesID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Patch
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	s, err := handler.service.Update(request.Context(), seriesID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, s)
}

func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	seriesID, err := requestutil.IntParam(request, "seriesID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), seriesID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
