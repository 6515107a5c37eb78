// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/songmood/annotation"
	"github.com/danielhkuo/songmood/middleware"
)

type TaxonomyHandler struct {
	taxonomy annotation.Taxonomy
}

func NewTaxonomyHandler(t annotation.Taxonomy) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: t}
}

// Taxonomy handles GET /api/taxonomy
// Category and item order is preserved on the wire
func (h *TaxonomyHandler) Taxonomy(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.taxonomy)
}
