package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"cafe-site/models"
	"cafe-site/storage"
)

const ExportFileName = "cafe-data.json"

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrInvalidImport = errors.New("import is not a valid JSON document")
)

// ContentService edits the café document. Every mutation reads the whole
// document, changes a copy and writes the whole document back.
type ContentService struct {
	repo     storage.ContentRepository
	ids      *IDGenerator
	defaults *models.CafeData

	mu sync.Mutex // serializes read-modify-write cycles in this process
}

// NewContentService uses defaults when nothing is stored; nil means the
// built-in document.
func NewContentService(repo storage.ContentRepository, defaults *models.CafeData) *ContentService {
	if defaults == nil {
		defaults = models.DefaultCafeData()
	}
	return &ContentService{
		repo:     repo,
		ids:      NewIDGenerator(),
		defaults: defaults.Clone(),
	}
}

// Get returns the stored document, or the defaults when none is stored or
// the stored one does not parse.
func (s *ContentService) Get(ctx context.Context) (*models.CafeData, error) {
	data, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, storage.ErrNotFound):
		return s.defaults.Clone(), nil
	case errors.Is(err, storage.ErrCorrupt):
		log.Printf("content: %v; serving defaults", err)
		return s.defaults.Clone(), nil
	default:
		return nil, err
	}
}

// Replace validates and stores data as the new document.
func (s *ContentService) Replace(ctx context.Context, data *models.CafeData) error {
	if data == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidContent)
	}
	if err := validateStruct(data); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Replace(ctx, data)
}

func (s *ContentService) mutate(ctx context.Context, fn func(d *models.CafeData) error) (*models.CafeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, next); err != nil {
		return nil, fmt.Errorf("save %s: %w", storage.ContentKey, err)
	}
	return next, nil
}

func (s *ContentService) UpdateInfo(ctx context.Context, info models.Info) (*models.Info, error) {
	if err := validateStruct(&info); err != nil {
		return nil, err
	}
	if _, err := s.mutate(ctx, func(d *models.CafeData) error {
		d.Info = info
		return nil
	}); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListMenu returns menu items in document order; an empty category means all.
func (s *ContentService) ListMenu(ctx context.Context, category string) ([]models.MenuItem, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]models.MenuItem, 0, len(data.Menu))
	for _, item := range data.Menu {
		if category == "" || item.Category == category {
			items = append(items, item)
		}
	}
	return items, nil
}

// Featured returns the items shown in the specialties section.
func (s *ContentService) Featured(ctx context.Context) ([]models.MenuItem, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]models.MenuItem, 0, len(data.Menu))
	for _, item := range data.Menu {
		if item.Featured {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *ContentService) MenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(data.Menu, id, menuItemID)
	if i < 0 {
		return nil, ErrItemNotFound
	}
	return &data.Menu[i], nil
}

func (s *ContentService) AddMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	if err := validateStruct(&item); err != nil {
		return nil, err
	}
	item.ID = s.ids.Next()
	if _, err := s.mutate(ctx, func(d *models.CafeData) error {
		d.Menu = append(d.Menu, item)
		return nil
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ContentService) UpdateMenuItem(ctx context.Context, id string, item models.MenuItem) (*models.MenuItem, error) {
	if err := validateStruct(&item); err != nil {
		return nil, err
	}
	item.ID = id
	if _, err := s.mutate(ctx, func(d *models.CafeData) error {
		return replaceByID(d.Menu, item, menuItemID)
	}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ContentService) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(d *models.CafeData) error {
		var err error
		d.Menu, err = removeByID(d.Menu, id, menuItemID)
		return err
	})
	return err
}

func (s *ContentService) AddTestimonial(ctx context.Context, t models.Testimonial) (*models.Testimonial, error) {
	if err := validateStruct(&t); err != nil {
		return nil, err
	}
	t.ID = s.ids.Next()
	if _, err := s.mutate(ctx, func(d *models.CafeData) error {
		d.Testimonials = append(d.Testimonials, t)
		return nil
	}); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *ContentService) UpdateTestimonial(ctx context.Context, id string, t models.Testimonial) (*models.Testimonial, error) {
	if err := validateStruct(&t); err != nil {
		return nil, err
	}
	t.ID = id
	if _, err := s.mutate(ctx, func(d *models.CafeData) error {
		return replaceByID(d.Testimonials, t, testimonialID)
	}); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *ContentService) DeleteTestimonial(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(d *models.CafeData) error {
		var err error
		d.Testimonials, err = removeByID(d.Testimonials, id, testimonialID)
		return err
	})
	return err
}

func (s *ContentService) AddGalleryImage(ctx context.Context, img models.GalleryImage) (*models.GalleryImage, error) {
	if err := validateStruct(&img); err != nil {
		return nil, err
	}
	img.ID = s.ids.Next()
	if _, err := s.mutate(ctx, func(d *models.CafeData) error {
		d.Gallery = append(d.Gallery, img)
		return nil
	}); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *ContentService) UpdateGalleryImage(ctx context.Context, id string, img models.GalleryImage) (*models.GalleryImage, error) {
	if err := validateStruct(&img); err != nil {
		return nil, err
	}
	img.ID = id
	if _, err := s.mutate(ctx, func(d *models.CafeData) error {
		return replaceByID(d.Gallery, img, galleryImageID)
	}); err != nil {
		return nil, err
	}
	return &img, nil
}

func (s *ContentService) DeleteGalleryImage(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, func(d *models.CafeData) error {
		var err error
		d.Gallery, err = removeByID(d.Gallery, id, galleryImageID)
		return err
	})
	return err
}

// Export returns the current document as indented JSON, ready to be saved
// as ExportFileName.
func (s *ContentService) Export(ctx context.Context) ([]byte, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// Import replaces the document with the JSON read from r. Only
// well-formedness is checked; a payload that does not parse leaves the
// stored document untouched.
func (s *ContentService) Import(ctx context.Context, r io.Reader) (*models.CafeData, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	var data models.CafeData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Replace(ctx, &data); err != nil {
		return nil, fmt.Errorf("save %s: %w", storage.ContentKey, err)
	}
	return &data, nil
}

// Reset drops the stored document so the defaults are served again.
func (s *ContentService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Delete(ctx)
}

func menuItemID(m models.MenuItem) string        { return m.ID }
func testimonialID(t models.Testimonial) string   { return t.ID }
func galleryImageID(g models.GalleryImage) string { return g.ID }

func indexOf[T any](list []T, id string, idOf func(T) string) int {
	for i, v := range list {
		if idOf(v) == id {
			return i
		}
	}
	return -1
}

// replaceByID swaps the entry in place, keeping its position.
func replaceByID[T any](list []T, v T, idOf func(T) string) error {
	i := indexOf(list, idOf(v), idOf)
	if i < 0 {
		return ErrItemNotFound
	}
	list[i] = v
	return nil
}

// removeByID filters out the entry; the order of the rest is kept.
func removeByID[T any](list []T, id string, idOf func(T) string) ([]T, error) {
	out := make([]T, 0, len(list))
	found := false
	for _, v := range list {
		if idOf(v) == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		return nil, ErrItemNotFound
	}
	return out, nil
}
