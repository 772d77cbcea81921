package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digistyle/internal/analysis"
	"digistyle/internal/db"
	"digistyle/internal/intake"
	"digistyle/internal/model"
	"digistyle/internal/store"
)

type stubAnalysis struct {
	classification *analysis.Classification
	classifyErr    error
	removedURI     string
	removeErr      error
}

func (s *stubAnalysis) Classify(ctx context.Context, imageURI string) (*analysis.Classification, error) {
	if s.classifyErr != nil {
		return nil, s.classifyErr
	}
	return s.classification, nil
}

func (s *stubAnalysis) RemoveBackground(ctx context.Context, imageURI string) (string, error) {
	if s.removeErr != nil {
		return "", s.removeErr
	}
	return s.removedURI, nil
}

func setupTestServer(t *testing.T, service analysis.Service) (*httptest.Server, *store.Store) {
	t.Helper()
	if service == nil {
		service = &stubAnalysis{}
	}

	s := store.New(t.Context(), db.NewTestDB(t), nil)
	router := NewRouter(s, intake.NewManager(s, service))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	t.Cleanup(s.Flush)
	return server, s
}

// emptyWardrobe deletes the seed items so tests start from scratch.
func emptyWardrobe(s *store.Store) {
	for _, item := range s.Items() {
		s.DeleteItem(item.ID)
	}
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func photoForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 30, 30))
	for x := 0; x < 30; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{10, 120, 80, 255})
		}
	}
	var photo bytes.Buffer
	require.NoError(t, jpeg.Encode(&photo, img, nil))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write(photo.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func uploadPhoto(t *testing.T, serverURL string) intake.Snapshot {
	t.Helper()

	body, contentType := photoForm(t)
	resp, err := http.Post(serverURL+"/api/intake", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decodeBody[intake.Snapshot](t, resp)
}

func TestWardrobeBrowseFilters(t *testing.T) {
	server, s := setupTestServer(t, nil)
	emptyWardrobe(s)
	s.AddItem(model.ClothingItem{ID: "a", Category: model.CategoryShoes, SubCategory: "Boots"})
	s.AddItem(model.ClothingItem{ID: "b", Category: model.CategoryTops, SubCategory: "T-Shirt", Tags: []string{"Casual"}})

	resp := doJSON(t, "GET", server.URL+"/api/wardrobe?category=Shoes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeBody[struct {
		Items       []model.ClothingItem `json:"items"`
		ItemCount   int                  `json:"itemCount"`
		OutfitCount int                  `json:"outfitCount"`
	}](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "a", view.Items[0].ID)
	assert.Equal(t, 2, view.ItemCount)

	resp = doJSON(t, "GET", server.URL+"/api/wardrobe?q=casual", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decodeBody[struct {
		Items       []model.ClothingItem `json:"items"`
		ItemCount   int                  `json:"itemCount"`
		OutfitCount int                  `json:"outfitCount"`
	}](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "b", view.Items[0].ID)
}

func TestWardrobeBrowseRejectsUnknownCategory(t *testing.T) {
	server, _ := setupTestServer(t, nil)
	resp := doJSON(t, "GET", server.URL+"/api/wardrobe?category=Hats", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteItemIsIdempotentOverHTTP(t *testing.T) {
	server, s := setupTestServer(t, nil)
	emptyWardrobe(s)
	s.AddItem(model.ClothingItem{ID: "a", Category: model.CategoryTops})

	resp := doJSON(t, "DELETE", server.URL+"/api/items/a", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, "DELETE", server.URL+"/api/items/a", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, s.Items())
}

func TestStyleScheduleAndPlanScenario(t *testing.T) {
	server, s := setupTestServer(t, nil)
	emptyWardrobe(s)
	s.AddItem(model.ClothingItem{ID: "A", Category: model.CategoryTops})
	s.AddItem(model.ClothingItem{ID: "B", Category: model.CategoryShoes})

	items := s.Items()
	require.Equal(t, "B", items[0].ID)
	require.Equal(t, "A", items[1].ID)

	// Save an outfit with B, scheduled for 2024-01-01 09:00.
	resp := doJSON(t, "POST", server.URL+"/api/outfits", map[string]any{
		"itemIds": []string{"B"},
		"date":    "2024-01-01",
		"time":    "09:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	outfit := decodeBody[model.Outfit](t, resp)
	require.Len(t, outfit.Items, 1)
	assert.Equal(t, "B", outfit.Items[0].ID)
	assert.Equal(t, []string{"Stylist"}, outfit.Tags)

	// Planner on the scheduled day shows exactly that outfit.
	resp = doJSON(t, "GET", server.URL+"/api/planner?date=2024-01-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	day := decodeBody[struct {
		Date    string         `json:"date"`
		Week    []string       `json:"week"`
		Outfits []model.Outfit `json:"outfits"`
	}](t, resp)
	require.Len(t, day.Outfits, 1)
	assert.Equal(t, outfit.ID, day.Outfits[0].ID)
	assert.Len(t, day.Week, 7)

	// The next day shows none.
	resp = doJSON(t, "GET", server.URL+"/api/planner?date=2024-01-02", nil)
	day = decodeBody[struct {
		Date    string         `json:"date"`
		Week    []string       `json:"week"`
		Outfits []model.Outfit `json:"outfits"`
	}](t, resp)
	assert.Empty(t, day.Outfits)
}

func TestCreateOutfitRejectsEmptySelection(t *testing.T) {
	server, s := setupTestServer(t, nil)
	_, before := s.Counts()

	resp := doJSON(t, "POST", server.URL+"/api/outfits", map[string]any{"itemIds": []string{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Ids that are not in the wardrobe count as empty too.
	resp = doJSON(t, "POST", server.URL+"/api/outfits", map[string]any{"itemIds": []string{"ghost"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, after := s.Counts()
	assert.Equal(t, before, after, "store unchanged")
}

func TestPlannerMonthGrid(t *testing.T) {
	server, _ := setupTestServer(t, nil)

	resp := doJSON(t, "GET", server.URL+"/api/planner/month?month=2024-03", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	grid := decodeBody[struct {
		Month string    `json:"month"`
		Cells []*string `json:"cells"`
	}](t, resp)

	assert.Equal(t, "2024-03", grid.Month)
	require.Len(t, grid.Cells, 36, "5 padding cells + 31 days")
	assert.Nil(t, grid.Cells[0])
	require.NotNil(t, grid.Cells[5])
	assert.Equal(t, "2024-03-01", *grid.Cells[5])
}

func TestIntakeWorkflowOverHTTP(t *testing.T) {
	service := &stubAnalysis{
		classification: &analysis.Classification{
			Category:    model.CategoryShoes,
			SubCategory: "Boots",
			Colors:      []string{"Brown"},
			Seasons:     []model.Season{model.SeasonWinter},
			Tags:        []string{"Leather"},
		},
		removedURI: "data:image/png;base64,bmV3",
	}
	server, s := setupTestServer(t, service)
	emptyWardrobe(s)

	snap := uploadPhoto(t, server.URL)
	assert.Equal(t, "preview", snap.State)
	base := fmt.Sprintf("%s/api/intake/%s", server.URL, snap.ID)

	// Remove background, then undo, then remove again.
	resp := doJSON(t, "POST", base+"/remove-background", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[intake.Snapshot](t, resp)
	assert.True(t, snap.Modified)

	resp = doJSON(t, "POST", base+"/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[intake.Snapshot](t, resp)
	assert.False(t, snap.Modified)

	resp = doJSON(t, "POST", base+"/remove-background", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Classify and save with an edited sub-category.
	resp = doJSON(t, "POST", base+"/analyze", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[intake.Snapshot](t, resp)
	assert.Equal(t, "details", snap.State)

	resp = doJSON(t, "POST", base+"/save", map[string]string{"subCategory": "Chelsea Boots"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decodeBody[model.ClothingItem](t, resp)
	assert.Equal(t, model.CategoryShoes, item.Category)
	assert.Equal(t, "Chelsea Boots", item.SubCategory)
	assert.NotEmpty(t, item.OriginalImageURL)

	require.Len(t, s.Items(), 1)
	assert.Equal(t, item.ID, s.Items()[0].ID)

	// Session is gone after save.
	resp = doJSON(t, "GET", base, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntakeReattachAfterBackOverHTTP(t *testing.T) {
	server, _ := setupTestServer(t, nil)

	snap := uploadPhoto(t, server.URL)
	base := fmt.Sprintf("%s/api/intake/%s", server.URL, snap.ID)

	// Re-upload is only available after going back to the upload step.
	body, contentType := photoForm(t)
	resp, err := http.Post(base+"/image", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, "POST", base+"/back", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[intake.Snapshot](t, resp)
	require.Equal(t, "upload", snap.State)

	body, contentType = photoForm(t)
	resp, err = http.Post(base+"/image", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeBody[intake.Snapshot](t, resp)
	assert.Equal(t, "preview", snap.State)
	assert.NotEmpty(t, snap.ImageURL)

	body, contentType = photoForm(t)
	resp, err = http.Post(server.URL+"/api/intake/ghost/image", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIntakeAnalyzeFailureSurfaces(t *testing.T) {
	server, _ := setupTestServer(t, &stubAnalysis{classifyErr: analysis.ErrAnalysisFailed})

	snap := uploadPhoto(t, server.URL)
	base := fmt.Sprintf("%s/api/intake/%s", server.URL, snap.ID)

	resp := doJSON(t, "POST", base+"/analyze", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// The workflow stays in preview; retry is manual.
	resp = doJSON(t, "GET", base, nil)
	snap = decodeBody[intake.Snapshot](t, resp)
	assert.Equal(t, "preview", snap.State)
}

func TestIntakeUnavailableWithoutAPIKey(t *testing.T) {
	server, _ := setupTestServer(t, analysis.Disabled{})

	snap := uploadPhoto(t, server.URL)
	resp := doJSON(t, "POST", fmt.Sprintf("%s/api/intake/%s/analyze", server.URL, snap.ID), nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestProfileRoundTripOverHTTP(t *testing.T) {
	server, _ := setupTestServer(t, nil)

	profile := model.Profile{Name: "Alex", Handle: "@alex", StylePreferences: []string{"Minimal"}}
	resp := doJSON(t, "PUT", server.URL+"/api/profile", profile)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, "GET", server.URL+"/api/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, profile, decodeBody[model.Profile](t, resp))
}

func TestDeleteOutfitOverHTTP(t *testing.T) {
	server, s := setupTestServer(t, nil)
	s.CreateOutfit(model.Outfit{ID: "o1", DateCreated: 1, Tags: []string{"Stylist"}})

	resp := doJSON(t, "DELETE", server.URL+"/api/outfits/o1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, s.Outfits())
}
