package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cafe-site/models"
	"cafe-site/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	data, err := s.content.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) listMenu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && category != models.CategoryDrink && category != models.CategoryDessert {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid category: %s", category))
		return
	}
	items, err := s.content.ListMenu(r.Context(), category)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) featuredMenu(w http.ResponseWriter, r *http.Request) {
	items, err := s.content.Featured(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.content.MenuItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type linkResponse struct {
	URL     string  `json:"url"`
	Message string  `json:"message,omitempty"`
	Total   float64 `json:"total,omitempty"`
}

func (s *Server) orderLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	item, err := s.content.MenuItem(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	data, err := s.content.Get(ctx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	q := r.URL.Query()
	req := services.OrderRequest{Size: q.Get("size"), Quantity: 1, Note: q.Get("note")}
	if v := q.Get("qty"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "qty must be a number")
			return
		}
		req.Quantity = n
	}
	if req.Size != "" {
		if _, ok := item.FindSize(req.Size); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown size: %s", req.Size))
			return
		}
	}
	qty := services.ClampQuantity(req.Quantity)
	writeJSON(w, http.StatusOK, linkResponse{
		URL:   services.OrderLink(data.Info.WhatsApp, *item, req),
		Total: services.UnitPrice(*item, req.Size) * float64(qty),
	})
}

func (s *Server) contactLink(w http.ResponseWriter, r *http.Request) {
	data, err := s.content.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	text := r.URL.Query().Get("text")
	writeJSON(w, http.StatusOK, linkResponse{URL: services.WhatsAppLink(data.Info.WhatsApp, text), Message: text})
}

func (s *Server) locationLink(w http.ResponseWriter, r *http.Request) {
	data, err := s.content.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, linkResponse{URL: services.MapsLink(data.Info.Address)})
}

func (s *Server) replaceContent(w http.ResponseWriter, r *http.Request) {
	var data models.CafeData
	if !decodeJSON(w, r, &data) {
		return
	}
	if err := s.content.Replace(r.Context(), &data); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &data)
}

func (s *Server) updateInfo(w http.ResponseWriter, r *http.Request) {
	var info models.Info
	if !decodeJSON(w, r, &info) {
		return
	}
	out, err := s.content.UpdateInfo(r.Context(), info)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if !decodeJSON(w, r, &item) {
		return
	}
	out, err := s.content.AddMenuItem(r.Context(), item)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if !decodeJSON(w, r, &item) {
		return
	}
	out, err := s.content.UpdateMenuItem(r.Context(), chi.URLParam(r, "id"), item)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteMenuItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addTestimonial(w http.ResponseWriter, r *http.Request) {
	var t models.Testimonial
	if !decodeJSON(w, r, &t) {
		return
	}
	out, err := s.content.AddTestimonial(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	var t models.Testimonial
	if !decodeJSON(w, r, &t) {
		return
	}
	out, err := s.content.UpdateTestimonial(r.Context(), chi.URLParam(r, "id"), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteTestimonial(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addGalleryImage(w http.ResponseWriter, r *http.Request) {
	var img models.GalleryImage
	if !decodeJSON(w, r, &img) {
		return
	}
	out, err := s.content.AddGalleryImage(r.Context(), img)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) updateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var img models.GalleryImage
	if !decodeJSON(w, r, &img) {
		return
	}
	out, err := s.content.UpdateGalleryImage(r.Context(), chi.URLParam(r, "id"), img)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := s.content.DeleteGalleryImage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) exportContent(w http.ResponseWriter, r *http.Request) {
	b, err := s.content.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// importContent accepts the document as the raw body or as a multipart
// "file" field.
func (s *Server) importContent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeServiceError(w, r, err)
				return
			}
			writeError(w, http.StatusBadRequest, "missing file")
			return
		}
		defer f.Close()
		src = f
	}
	data, err := s.content.Import(r.Context(), src)
	if err != nil {
		log.Printf("api: import by %s rejected: %v", currentUser(r).Email, err)
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) resetContent(w http.ResponseWriter, r *http.Request) {
	if err := s.content.Reset(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	data, err := s.content.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
