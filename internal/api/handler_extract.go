package api

import "net/http"

// HandleExtract serves POST /extract: pull the text out of an uploaded PDF.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	upload, err := formUpload(r, "file")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logUpload("extract", upload)

	result, err := h.extract.Extract(r.Context(), upload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
