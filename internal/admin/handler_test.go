package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/expertgati/movers-web/internal/blog"
	"github.com/expertgati/movers-web/internal/lead"
	"github.com/expertgati/movers-web/internal/media"
	"github.com/expertgati/movers-web/internal/platform/config"
	"github.com/expertgati/movers-web/internal/platform/database"
	"github.com/expertgati/movers-web/internal/seo"
	"github.com/expertgati/movers-web/internal/team"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

type fixture struct {
	router  *gin.Engine
	leads   *lead.Service
	sitemap *countingInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	metaRepo := seo.NewRepository(db)
	require.NoError(t, metaRepo.Migrate())
	leadRepo := lead.NewRepository(db)
	require.NoError(t, leadRepo.Migrate())
	blogRepo := blog.NewRepository(db)
	require.NoError(t, blogRepo.Migrate())
	teamSvc := team.NewService(db, media.NewStore(t.TempDir(), "/media"), nil)
	require.NoError(t, teamSvc.Migrate())

	inv := &countingInvalidator{}
	h := NewHandler(Deps{
		Config: config.AdminConfig{
			Header:   "Expert Gati Administration",
			Title:    "Expert Gati Admin Portal",
			Accounts: map[string]string{"ops": "secret"},
		},
		Metadata: metaRepo,
		Leads:    leadRepo,
		Blog:     blog.NewService(blogRepo),
		Team:     teamSvc,
		Sitemap:  inv,
	})
	r := gin.New()
	require.True(t, h.Register(r))
	return &fixture{router: r, leads: lead.NewService(leadRepo, nil, 0, nil), sitemap: inv}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("ops", "secret")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var resp apiResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestRequiresBasicAuth(t *testing.T) {
	f := newFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/site", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := f.do(t, http.MethodGet, "/admin/api/site", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"header": "Expert Gati Administration", "title": "Expert Gati Admin Portal"}, resp.Data)
}

func TestRegisterWithoutAccounts(t *testing.T) {
	h := NewHandler(Deps{})
	require.False(t, h.Register(gin.New()))
}

func TestSeedAndEditMetadata(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/admin/api/seo/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"created": float64(7), "updated": float64(0)}, resp.Data)

	_, resp = f.do(t, http.MethodPost, "/admin/api/seo/seed", nil)
	require.Equal(t, map[string]any{"created": float64(0), "updated": float64(7)}, resp.Data)

	w, resp = f.do(t, http.MethodPut, "/admin/api/seo/Rates", seo.Bundle{MetaTitle: "New rates title"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, resp.Meta["created"])

	_, resp = f.do(t, http.MethodGet, "/admin/api/seo/Rates", nil)
	require.Equal(t, "New rates title", resp.Data.(map[string]any)["meta_title"])

	w, _ = f.do(t, http.MethodGet, "/admin/api/seo/Missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	_, resp = f.do(t, http.MethodGet, "/admin/api/seo", nil)
	require.EqualValues(t, 7, resp.Meta["total"])
}

func TestListLeadsPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"one", "two", "three"} {
		_, err := f.leads.CreateContact(ctx, lead.ContactForm{Name: name, Email: "a@b.com", Message: "hi"}, "203.0.113.1")
		require.NoError(t, err)
	}

	w, resp := f.do(t, http.MethodGet, "/admin/api/leads/contact?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Data, 2)
	require.EqualValues(t, 3, resp.Meta["total"])

	_, resp = f.do(t, http.MethodGet, "/admin/api/leads/moving", nil)
	require.EqualValues(t, 0, resp.Meta["total"])
}

func TestBlogEndpointsInvalidateSitemap(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/admin/api/blog", blog.Input{Title: "Office Moving Checklist", Published: true})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "office-moving-checklist", resp.Data.(map[string]any)["slug"])

	w, _ = f.do(t, http.MethodPost, "/admin/api/blog", blog.Input{Title: "Office moving checklist"})
	require.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.do(t, http.MethodPut, "/admin/api/blog/office-moving-checklist", blog.Input{Title: "Office Moving Checklist", Summary: "Updated"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPut, "/admin/api/blog/missing", blog.Input{Title: "x"})
	require.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, 2, f.sitemap.calls)
}

func photoRequest(t *testing.T, path string, side int) *http.Request {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, side, side))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth("ops", "secret")
	return req
}

func TestTeamPhotoUpload(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(t, http.MethodPost, "/admin/api/team", team.Input{Name: "Meera", Role: "Coordinator"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := int(resp.Data.(map[string]any)["id"].(float64))
	path := "/admin/api/team/" + strconv.Itoa(id) + "/photo"

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, photoRequest(t, path, 500))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "too_small")

	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, photoRequest(t, path, 600))
	require.Equal(t, http.StatusOK, w.Code)

	_, resp = f.do(t, http.MethodGet, "/admin/api/team", nil)
	members := resp.Data.([]any)
	require.Len(t, members, 1)
	require.Contains(t, members[0].(map[string]any)["photo_ref"], "/media/team/")
}
