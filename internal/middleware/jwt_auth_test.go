package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func authGet(t *testing.T, r *gin.Engine, header, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_TokenSources(t *testing.T) {
	r := newAuthEngine()

	token, err := GenerateAccessToken(7, "artist@example.com", "artist")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"Bearer 头", "Bearer " + token, "", http.StatusOK},
		{"Cookie", "", token, http.StatusOK},
		{"都没有", "", "", http.StatusUnauthorized},
		{"头格式错误", "garbage", "", http.StatusUnauthorized},
		// 浏览器插件塞了杂项头，正常的 Cookie 会话不能被挡掉
		{"头格式错误但 Cookie 有效", "garbage", token, http.StatusOK},
		{"头缺少 Bearer 前缀但 Cookie 有效", token, token, http.StatusOK},
		{"头里是坏 Token，Cookie 不兜底", "Bearer not-a-jwt", token, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := authGet(t, r, tt.header, tt.cookie)
			if rec.Code != tt.want {
				t.Errorf("状态码 = %d, want %d\n%s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
