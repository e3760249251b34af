package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// 注册阶段只取方法值，nil 控制器不会被调用
	InitRoutes(r, nil, nil, nil, nil, nil, nil)
	return r
}

func TestInitRoutes_RegistersSwaggerUI(t *testing.T) {
	r := newTestEngine()

	found := false
	for _, route := range r.Routes() {
		if route.Method == http.MethodGet && route.Path == "/swagger/*any" {
			found = true
		}
	}
	if !found {
		t.Fatal("未注册 /swagger/*any 路由")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /swagger/index.html 状态码 = %d, 期望 200", w.Code)
	}
}

func TestInitRoutes_CoversMarketplaceLifecycle(t *testing.T) {
	r := newTestEngine()

	want := map[string]bool{
		"GET /api/artists/marketplace/mine": false,
		"POST /api/artists/marketplace":     false,
		"PUT /api/artists/marketplace":      false,
		"DELETE /api/artists/marketplace":   false,
	}
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, ok := range want {
		if !ok {
			t.Errorf("未注册路由 %s", key)
		}
	}
}
