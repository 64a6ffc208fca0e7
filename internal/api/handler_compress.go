package api

import (
	"net/http"

	"docmill/internal/middleware"
	"docmill/internal/service/compress"
)

// HandleCompress serves POST /pdf-compress: run the upload through the
// converter and report the size accounting.
func (h *Handler) HandleCompress(w http.ResponseWriter, r *http.Request) {
	upload, err := formUpload(r, "file")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logUpload("pdf-compress", upload)

	report, err := h.compress.Compress(r.Context(), compress.Request{
		Upload:     upload,
		Mode:       r.FormValue("mode"),
		Resolution: r.FormValue("resolution"),
		CallerIP:   middleware.ClientIP(r),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
