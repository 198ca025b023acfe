package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	repo "Ductwork/internal/repo"
)

type memRepo struct {
	users  map[string]repo.User
	hashes map[string]string
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]repo.User{}, hashes: map[string]string{}}
}

func (m *memRepo) CreateUser(_ context.Context, login, email, password string) (int, error) {
	if _, ok := m.users[login]; ok {
		return 0, repo.ErrLoginTaken
	}
	u := repo.User{ID: len(m.users) + 1, Login: login, Email: email}
	m.users[login] = u
	m.hashes[login] = password
	return u.ID, nil
}

func (m *memRepo) GetByLogin(_ context.Context, login string) (int, string, error) {
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.ID, m.hashes[login], nil
}

func (m *memRepo) GetUser(_ context.Context, id int) (repo.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repo.User{}, errors.New("user not found")
}

func newEnv() *Env {
	return &Env{JWTKey: []byte("test-key"), Repo: newMemRepo()}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	rr := post(env.RegisterHandler, `{"login":"alice","email":"a@example.com","password":"secret1"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %q", rr.Code, rr.Body.String())
	}
	sessionCookie(t, rr)

	rr = post(env.RegisterHandler, `{"login":"alice","email":"b@example.com","password":"secret1"}`)
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate register: status %d, want 409", rr.Code)
	}

	rr = post(env.LoginHandler, `{"login":"alice","password":"secret1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: status %d", rr.Code)
	}
	c := sessionCookie(t, rr)
	if !c.HttpOnly || !c.Secure {
		t.Errorf("cookie flags: HttpOnly=%v Secure=%v", c.HttpOnly, c.Secure)
	}

	for _, body := range []string{
		`{"login":"alice","password":"wrong-pass"}`,
		`{"login":"bob","password":"secret1"}`,
	} {
		if rr := post(env.LoginHandler, body); rr.Code != http.StatusUnauthorized {
			t.Errorf("login %s: status %d, want 401", body, rr.Code)
		}
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	env := newEnv()
	cases := []string{
		`{`,
		`{"login":"","email":"a@example.com","password":"secret1"}`,
		`{"login":"carol","email":"c@example.com","password":"123"}`,
	}
	for _, body := range cases {
		if rr := post(env.RegisterHandler, body); rr.Code != http.StatusBadRequest {
			t.Errorf("register %s: status %d, want 400", body, rr.Code)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	var seen int
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserID(r.Context())
	}))

	token, err := env.issueToken(7, "alice", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	expired, err := env.issueToken(7, "alice", time.Now().Add(-2*tokenTTL))
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := (&Env{JWTKey: []byte("other-key")}).issueToken(7, "alice", time.Now())
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		cookie string
		code   int
		userID int
	}{
		{"valid", token, http.StatusOK, 7},
		{"missing", "", http.StatusUnauthorized, 0},
		{"expired", expired, http.StatusUnauthorized, 0},
		{"wrong key", foreign, http.StatusUnauthorized, 0},
		{"garbage", "not-a-jwt", http.StatusUnauthorized, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seen = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: c.cookie})
			}
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)
			if rr.Code != c.code {
				t.Errorf("status %d, want %d", rr.Code, c.code)
			}
			if seen != c.userID {
				t.Errorf("user id %d, want %d", seen, c.userID)
			}
		})
	}
}

func TestMe(t *testing.T) {
	env := newEnv()
	id, _ := env.Repo.CreateUser(context.Background(), "alice", "a@example.com", "x")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, id))
	rr := httptest.NewRecorder()
	env.Me(rr, req)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"login":"alice"`) {
		t.Errorf("Me: status %d, body %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	env.Me(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Me without user: status %d, want 401", rr.Code)
	}
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 4)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = fmt.Sprintf("10.0.0.1:%d", 40000+i)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	other := httptest.NewRequest(http.MethodPost, "/", nil)
	other.RemoteAddr = "10.0.0.2:1000"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, other)
	codes = append(codes, rr.Code)

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusOK}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d: status %d, want %d", i, codes[i], want[i])
		}
	}
}
