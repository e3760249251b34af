package client

// ==================== 会话 ====================

// SigninPath 401 之后前端应跳转的登录页
const SigninPath = "/signin"

// AuthSession 登录态。显式注入 Client，避免散落各处的 cookie 读取。
type AuthSession struct {
	Token string // access token，随 Authorization: Bearer 发送
	Role  string
	User  string // 展示用的用户名
}

// Clear 清空会话，等价于删除 token/role/user 三个 cookie
func (s *AuthSession) Clear() {
	s.Token = ""
	s.Role = ""
	s.User = ""
}

// Authenticated 是否持有 token
func (s *AuthSession) Authenticated() bool {
	return s != nil && s.Token != ""
}
