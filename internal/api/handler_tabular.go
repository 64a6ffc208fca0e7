package api

import (
	"net/http"

	"docmill/internal/domain"
)

// HandleCleanSheet serves POST /excel-cleaner: normalize a CSV or XLSX
// upload and return the cleaned rows as CSV text.
func (h *Handler) HandleCleanSheet(w http.ResponseWriter, r *http.Request) {
	upload, err := formUpload(r, "file")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logUpload("excel-cleaner", upload)

	opts := domain.DefaultCleaningOptions()
	opts.RemoveDuplicates = formFlag(r, "remove_duplicates", opts.RemoveDuplicates)
	opts.CleanText = formFlag(r, "clean_text", opts.CleanText)

	result, err := h.tabular.Clean(r.Context(), upload, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
