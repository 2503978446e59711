package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"cafe-site/models"
	"cafe-site/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContent(t *testing.T) (*ContentService, *storage.MemoryContent) {
	t.Helper()
	repo := &storage.MemoryContent{}
	return NewContentService(repo, nil), repo
}

func menuIDs(items []models.MenuItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func TestContent_GetFallsBackToDefaults(t *testing.T) {
	svc, repo := newTestContent(t)
	ctx := context.Background()

	data, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCafeData(), data)

	repo.SetRaw([]byte(`{"info": [broken`))
	data, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Café Aroma", data.Info.Name)
}

func TestContent_CustomDefaults(t *testing.T) {
	seed := models.DefaultCafeData()
	seed.Info.Name = "Café Norte"
	svc := NewContentService(&storage.MemoryContent{}, seed)

	data, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Café Norte", data.Info.Name)
}

func TestContent_DeleteMenuItemKeepsOrder(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	added, err := svc.AddMenuItem(ctx, models.MenuItem{Name: "Latte", Price: 5, Category: models.CategoryDrink})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMenuItem(ctx, "2"))

	items, err := svc.ListMenu(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", added.ID}, menuIDs(items))

	assert.ErrorIs(t, svc.DeleteMenuItem(ctx, "2"), ErrItemNotFound)
	items, err = svc.ListMenu(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestContent_AddAssignsIncreasingIDs(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	a, err := svc.AddMenuItem(ctx, models.MenuItem{Name: "A", Price: 1, Category: models.CategoryDrink, ID: "ignored"})
	require.NoError(t, err)
	b, err := svc.AddMenuItem(ctx, models.MenuItem{Name: "B", Price: 1, Category: models.CategoryDessert})
	require.NoError(t, err)

	assert.NotEqual(t, "ignored", a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.ID, b.ID)

	items, err := svc.ListMenu(ctx, models.CategoryDessert)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", b.ID}, menuIDs(items))
}

func TestContent_UpdateMenuItemInPlace(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	_, err := svc.UpdateMenuItem(ctx, "2", models.MenuItem{Name: "Cappuccino", Price: 6, Category: models.CategoryDrink})
	require.NoError(t, err)

	items, err := svc.ListMenu(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, menuIDs(items))
	assert.Equal(t, "Cappuccino", items[1].Name)

	_, err = svc.UpdateMenuItem(ctx, "99", models.MenuItem{Name: "X", Category: models.CategoryDrink})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestContent_Validation(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	tests := []struct {
		name string
		item models.MenuItem
	}{
		{"missing name", models.MenuItem{Price: 1, Category: models.CategoryDrink}},
		{"negative price", models.MenuItem{Name: "X", Price: -1, Category: models.CategoryDrink}},
		{"unknown category", models.MenuItem{Name: "X", Price: 1, Category: "comida"}},
		{"unnamed size", models.MenuItem{Name: "X", Price: 1, Category: models.CategoryDrink, Sizes: []models.Size{{Price: 2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddMenuItem(ctx, tt.item)
			assert.ErrorIs(t, err, ErrInvalidContent)
		})
	}

	_, err := svc.AddTestimonial(ctx, models.Testimonial{Name: "Ana", Text: "Bien", Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidContent)
	_, err = svc.AddGalleryImage(ctx, models.GalleryImage{Alt: "sin url"})
	assert.ErrorIs(t, err, ErrInvalidContent)
	_, err = svc.UpdateInfo(ctx, models.Info{Name: "Café", Email: "no-es-email"})
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestContent_TestimonialsAndGallery(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	tm, err := svc.AddTestimonial(ctx, models.Testimonial{Name: "Luis", Text: "Excelente", Rating: 4})
	require.NoError(t, err)
	_, err = svc.UpdateTestimonial(ctx, tm.ID, models.Testimonial{Name: "Luis", Text: "Muy bueno", Rating: 5})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTestimonial(ctx, "1"))

	img, err := svc.AddGalleryImage(ctx, models.GalleryImage{URL: "/terraza.png", Alt: "Terraza"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGalleryImage(ctx, "2"))
	_, err = svc.UpdateGalleryImage(ctx, img.ID, models.GalleryImage{URL: "/terraza-2.png"})
	require.NoError(t, err)

	data, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Len(t, data.Testimonials, 3)
	assert.Equal(t, "2", data.Testimonials[0].ID)
	assert.Equal(t, "Muy bueno", data.Testimonials[2].Text)
	require.Len(t, data.Gallery, 3)
	assert.Equal(t, []string{"1", "3", img.ID}, []string{data.Gallery[0].ID, data.Gallery[1].ID, data.Gallery[2].ID})
	assert.Equal(t, "/terraza-2.png", data.Gallery[2].URL)

	assert.ErrorIs(t, svc.DeleteTestimonial(ctx, "nope"), ErrItemNotFound)
	assert.ErrorIs(t, svc.DeleteGalleryImage(ctx, "nope"), ErrItemNotFound)
}

func TestContent_UpdateInfo(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	info := models.DefaultCafeData().Info
	info.Slogan = "Nuevo eslogan"
	_, err := svc.UpdateInfo(ctx, info)
	require.NoError(t, err)

	data, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo eslogan", data.Info.Slogan)
	assert.Len(t, data.Menu, 3)
}

func TestContent_ExportImportRoundTrip(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	_, err := svc.AddMenuItem(ctx, models.MenuItem{
		Name: "Mocha", Price: 5.25, Category: models.CategoryDrink,
		Sizes: []models.Size{{Name: "Chico", Price: 5.25}, {Name: "Grande", Price: 6.75}},
	})
	require.NoError(t, err)
	before, err := svc.Get(ctx)
	require.NoError(t, err)

	exported, err := svc.Export(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(exported), "{\n  \"info\""))

	require.NoError(t, svc.Reset(ctx))
	imported, err := svc.Import(ctx, bytes.NewReader(exported))
	require.NoError(t, err)
	assert.Equal(t, before, imported)

	after, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestContent_ImportInvalidKeepsDocument(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteMenuItem(ctx, "1"))
	_, err := svc.Import(ctx, strings.NewReader("not json"))
	assert.ErrorIs(t, err, ErrInvalidImport)

	items, err := svc.ListMenu(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, menuIDs(items))
}

func TestContent_ResetRestoresDefaults(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteMenuItem(ctx, "1"))
	require.NoError(t, svc.Reset(ctx))

	data, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCafeData(), data)
}

func TestContent_FeaturedAndLookup(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	_, err := svc.AddMenuItem(ctx, models.MenuItem{Name: "Té", Price: 3, Category: models.CategoryDrink})
	require.NoError(t, err)

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, menuIDs(featured))

	item, err := svc.MenuItem(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Cheesecake de Frutos Rojos", item.Name)

	_, err = svc.MenuItem(ctx, "404")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestContent_ReplaceValidates(t *testing.T) {
	svc, _ := newTestContent(t)
	ctx := context.Background()

	doc := models.DefaultCafeData()
	doc.Menu[0].Category = "otra"
	assert.ErrorIs(t, svc.Replace(ctx, doc), ErrInvalidContent)
	assert.ErrorIs(t, svc.Replace(ctx, nil), ErrInvalidContent)

	doc = models.DefaultCafeData()
	doc.Info.Name = "Café Sur"
	require.NoError(t, svc.Replace(ctx, doc))
	data, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Café Sur", data.Info.Name)
}
