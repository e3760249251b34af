package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/middleware"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/model"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/repository"
	"github.com/sardarit-bd/gulf-cost-music-sub004/internal/service"
)

// ==================== 测试辅助 ====================

type stubUploader struct {
	counter int
}

func (s *stubUploader) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	s.counter++
	return fmt.Sprintf("https://cdn.test/%d-%s", s.counter, filename), nil
}

func (s *stubUploader) Delete(ctx context.Context, url string) error {
	return nil
}

func setupMarketplaceRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Listing{}, &model.ListingPhoto{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	listingSvc := service.NewListingService(
		repository.NewListingRepository(db),
		service.NewMediaService(),
		&stubUploader{},
	)
	ctl := NewMarketplaceController(listingSvc)

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/marketplace", ctl.Browse)
	market := api.Group("/artists/marketplace", middleware.JWTAuth())
	{
		market.GET("/mine", ctl.GetMine)
		market.POST("", ctl.Create)
		market.PUT("", ctl.Update)
		market.DELETE("", ctl.Delete)
	}

	return r
}

func artistToken(t *testing.T, userID int64) string {
	token, err := middleware.GenerateAccessToken(userID, "artist@example.com", model.RoleArtist)
	if err != nil {
		t.Fatalf("生成测试 Token 失败: %v", err)
	}
	return token
}

// listingBody 构造 multipart 请求体
type listingBody struct {
	fields map[string]string
	photos []string // 文件名，内容类型按扩展名取 image/jpeg
	video  string
}

func buildMultipart(t *testing.T, body listingBody) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for key, value := range body.fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("写表单字段失败: %v", err)
		}
	}

	// CreateFormFile 会把 Content-Type 写死成 octet-stream，这里手动建分片
	addFile := func(field, filename, contentType string) {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("创建分片失败: %v", err)
		}
		part.Write([]byte("fake-bytes"))
	}

	for _, name := range body.photos {
		addFile("photos", name, "image/jpeg")
	}
	if body.video != "" {
		addFile("video", body.video, "video/mp4")
	}

	w.Close()
	return buf, w.FormDataContentType()
}

func doRequest(r *gin.Engine, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		// 浏览器客户端走 Cookie
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Warnings []struct {
		File   string `json:"file"`
		Reason string `json:"reason"`
	} `json:"warnings"`
	Errors map[string]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("解析响应失败: %v\n%s", err, rec.Body.String())
	}
	return env
}

type listingPayload struct {
	ID     int64  `json:"_id"`
	Title  string `json:"title"`
	Price  float64
	Status string `json:"status"`
	Photos []struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	} `json:"photos"`
	Video string `json:"video"`
}

// ==================== 测试 ====================

func TestMarketplaceController_RequiresAuth(t *testing.T) {
	r := setupMarketplaceRouter(t)

	rec := doRequest(r, http.MethodGet, "/api/artists/marketplace/mine", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestMarketplaceController_CreateAndGetMine(t *testing.T) {
	r := setupMarketplaceRouter(t)
	token := artistToken(t, 1)

	body, contentType := buildMultipart(t, listingBody{
		fields: map[string]string{
			"title":    "1974 Rhodes Mark I",
			"price":    "1850",
			"location": model.LocationLouisiana,
		},
		photos: []string{"front.jpg", "keys.jpg"},
		video:  "demo.mp4",
	})

	rec := doRequest(r, http.MethodPost, "/api/artists/marketplace", token, body, contentType)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Empty(t, env.Warnings)

	var listing listingPayload
	assert.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.NotZero(t, listing.ID)
	assert.Equal(t, "1974 Rhodes Mark I", listing.Title)
	assert.Len(t, listing.Photos, 2)
	assert.NotEmpty(t, listing.Video)

	// GET /mine 返回同一条
	rec = doRequest(r, http.MethodGet, "/api/artists/marketplace/mine", token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	env = decodeEnvelope(t, rec)
	var mine listingPayload
	assert.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Equal(t, listing.ID, mine.ID)
}

func TestMarketplaceController_CreateValidation(t *testing.T) {
	r := setupMarketplaceRouter(t)
	token := artistToken(t, 1)

	// 缺标题、地点非法、没照片
	body, contentType := buildMultipart(t, listingBody{
		fields: map[string]string{
			"price":    "100",
			"location": "Texas",
		},
	})

	rec := doRequest(r, http.MethodPost, "/api/artists/marketplace", token, body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "title")
	assert.Contains(t, env.Errors, "location")
	assert.Contains(t, env.Errors, "photos")
}

func TestMarketplaceController_UpdateWithDeleteDiff(t *testing.T) {
	r := setupMarketplaceRouter(t)
	token := artistToken(t, 1)

	body, contentType := buildMultipart(t, listingBody{
		fields: map[string]string{
			"title":    "Amp for sale",
			"price":    "300",
			"location": model.LocationFlorida,
		},
		photos: []string{"a.jpg", "b.jpg", "c.jpg"},
	})
	rec := doRequest(r, http.MethodPost, "/api/artists/marketplace", token, body, contentType)
	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	var created listingPayload
	assert.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Len(t, created.Photos, 3)

	// 删一张（索引键风格）+ 加一张
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	w.WriteField("title", "Amp for sale")
	w.WriteField("price", "250")
	w.WriteField("location", model.LocationFlorida)
	w.WriteField("deletedPhotos[0]", created.Photos[1].URL)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="photos"; filename="d.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, _ := w.CreatePart(h)
	part.Write([]byte("fake"))
	w.Close()

	rec = doRequest(r, http.MethodPut, "/api/artists/marketplace", token, buf, w.FormDataContentType())
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env = decodeEnvelope(t, rec)
	var updated listingPayload
	assert.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Len(t, updated.Photos, 3)
	for _, p := range updated.Photos {
		assert.NotEqual(t, created.Photos[1].URL, p.URL)
	}
}

func TestMarketplaceController_OverflowYieldsWarnings(t *testing.T) {
	r := setupMarketplaceRouter(t)
	token := artistToken(t, 1)

	photos := make([]string, 7)
	for i := range photos {
		photos[i] = fmt.Sprintf("p%d.jpg", i)
	}
	body, contentType := buildMultipart(t, listingBody{
		fields: map[string]string{
			"title":    "Pedalboard lot",
			"price":    "500",
			"location": model.LocationMississippi,
		},
		photos: photos,
	})

	rec := doRequest(r, http.MethodPost, "/api/artists/marketplace", token, body, contentType)
	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	var listing listingPayload
	assert.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing.Photos, model.MaxListingPhotos)
	assert.Len(t, env.Warnings, 2)
}

func TestMarketplaceController_Delete(t *testing.T) {
	r := setupMarketplaceRouter(t)
	token := artistToken(t, 1)

	body, contentType := buildMultipart(t, listingBody{
		fields: map[string]string{
			"title":    "Drum kit",
			"price":    "900",
			"location": model.LocationAlabama,
		},
		photos: []string{"kit.jpg"},
	})
	rec := doRequest(r, http.MethodPost, "/api/artists/marketplace", token, body, contentType)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(r, http.MethodDelete, "/api/artists/marketplace", token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(r, http.MethodGet, "/api/artists/marketplace/mine", token, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
