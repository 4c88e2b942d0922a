package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BolnidiManikanta/Virtual-Lab/internal/audit"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/config"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/database"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/models"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/store"
	"github.com/BolnidiManikanta/Virtual-Lab/internal/util"

	"gorm.io/gorm"
)

// mapStore is an in-memory UserStore for tests.
type mapStore struct {
	users map[string]models.User
	err   error // when set, FindByUsername always fails with it
}

func (m *mapStore) FindByUsername(username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *mapStore) List() ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mapStore) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// recordingSink captures every record and can be told to fail.
type recordingSink struct {
	records []audit.Record
	fail    bool
}

func (r *recordingSink) Record(_ context.Context, rec audit.Record) error {
	if r.fail {
		return audit.ErrUnavailable
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingSink) byKind(kind string) []audit.Record {
	var out []audit.Record
	for _, rec := range r.records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.StoreConfig{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testStore(t *testing.T) *mapStore {
	t.Helper()
	hash, err := util.HashPassword("Student@2024")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	fhash, err := util.HashPassword("Faculty@2024")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &mapStore{users: map[string]models.User{
		"student1": {Username: "student1", PasswordHash: hash, Role: models.RoleStudent, FullName: "Priya Sharma"},
		"faculty1": {Username: "faculty1", PasswordHash: fhash, Role: models.RoleFaculty, FullName: "Anita Rao"},
	}}
}

func newTestAuthenticator(t *testing.T, opts Options) (*Authenticator, *recordingSink) {
	t.Helper()
	if opts.Secret == "" {
		opts.Secret = "test-secret"
	}
	sink := &recordingSink{}
	return New(testStore(t), testDB(t), sink, opts), sink
}

var client = ClientInfo{IP: "10.0.0.1", UserAgent: "test-agent"}

func TestLogin_Success(t *testing.T) {
	a, sink := newTestAuthenticator(t, Options{})
	ctx := context.Background()

	session, token, user, err := a.Login(ctx, "student1", "Student@2024", "", client)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Role != models.RoleStudent || session.Username != "student1" {
		t.Errorf("session = %+v, want student1/student", session)
	}
	if user.FullName != "Priya Sharma" {
		t.Errorf("user.FullName = %q", user.FullName)
	}
	if token == "" {
		t.Fatal("token is empty")
	}

	// the token resolves back to the same session
	resolved, err := a.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.ID != session.ID {
		t.Errorf("resolved session id = %q, want %q", resolved.ID, session.ID)
	}

	// exactly one record, and it is a success
	if len(sink.records) != 1 {
		t.Fatalf("audit records = %d, want 1", len(sink.records))
	}
	if sink.records[0].Kind != audit.KindLoginSuccess {
		t.Errorf("record kind = %q, want login_success", sink.records[0].Kind)
	}
	if sink.records[0].Actor != "student1" {
		t.Errorf("record actor = %q, want student1", sink.records[0].Actor)
	}
}

func TestLogin_CaseInsensitiveUsername(t *testing.T) {
	a, _ := newTestAuthenticator(t, Options{})

	_, _, _, err := a.Login(context.Background(), " STUDENT1 ", "Student@2024", "", client)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}

func TestLogin_FailureIndistinguishable(t *testing.T) {
	a, sink := newTestAuthenticator(t, Options{})
	ctx := context.Background()

	// wrong password on an existing account
	_, _, _, errWrong := a.Login(ctx, "student1", "not-the-password", "", client)
	// unknown account entirely
	_, _, _, errUnknown := a.Login(ctx, "ghost", "whatever", "", client)

	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrong)
	}
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", errUnknown)
	}

	failures := sink.byKind(audit.KindLoginFailure)
	if len(failures) != 2 {
		t.Fatalf("login_failure records = %d, want 2", len(failures))
	}
	// one record per attempt, nothing else
	if len(sink.records) != 2 {
		t.Errorf("total records = %d, want 2", len(sink.records))
	}
}

func TestLogin_Lockout(t *testing.T) {
	a, sink := newTestAuthenticator(t, Options{LockoutThreshold: 3, LockoutWindow: time.Hour})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		a.Login(ctx, "student1", "bad-password", "", client)
	}

	// correct password no longer works while locked
	_, _, _, err := a.Login(ctx, "student1", "Student@2024", "", client)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("locked login error = %v, want ErrInvalidCredentials", err)
	}

	failures := sink.byKind(audit.KindLoginFailure)
	if len(failures) != 4 {
		t.Errorf("login_failure records = %d, want 4", len(failures))
	}
	if failures[3].Detail != "account locked" {
		t.Errorf("last failure detail = %q, want account locked", failures[3].Detail)
	}

	// other accounts are unaffected
	if _, _, _, err := a.Login(ctx, "faculty1", "Faculty@2024", "", client); err != nil {
		t.Errorf("other account login error = %v, want nil", err)
	}
}

func TestLogin_LockoutClearsOnSuccess(t *testing.T) {
	a, _ := newTestAuthenticator(t, Options{LockoutThreshold: 3, LockoutWindow: time.Hour})
	ctx := context.Background()

	a.Login(ctx, "student1", "bad", "", client)
	a.Login(ctx, "student1", "bad", "", client)
	if _, _, _, err := a.Login(ctx, "student1", "Student@2024", "", client); err != nil {
		t.Fatalf("login before threshold error = %v", err)
	}

	// counter reset: two more failures are still below threshold
	a.Login(ctx, "student1", "bad", "", client)
	a.Login(ctx, "student1", "bad", "", client)
	if _, _, _, err := a.Login(ctx, "student1", "Student@2024", "", client); err != nil {
		t.Errorf("login after reset error = %v, want nil", err)
	}
}

func TestLogin_SessionRotation(t *testing.T) {
	a, _ := newTestAuthenticator(t, Options{})
	ctx := context.Background()

	first, firstToken, _, err := a.Login(ctx, "student1", "Student@2024", "", client)
	if err != nil {
		t.Fatalf("first login error = %v", err)
	}

	second, _, _, err := a.Login(ctx, "student1", "Student@2024", firstToken, client)
	if err != nil {
		t.Fatalf("second login error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("second login should issue a new session id")
	}

	// the first session is dead after rotation
	if _, err := a.Resolve(ctx, firstToken); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Resolve(old token) error = %v, want ErrUnauthenticated", err)
	}
}

func TestLogin_AuditFailureBlocksLogin(t *testing.T) {
	sink := &recordingSink{fail: true}
	a := New(testStore(t), testDB(t), sink, Options{Secret: "test-secret"})
	ctx := context.Background()

	_, token, _, err := a.Login(ctx, "student1", "Student@2024", "", client)
	if err == nil {
		t.Fatal("Login() with failing sink error = nil, want error")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("sink failure must not masquerade as invalid credentials")
	}
	if token != "" {
		t.Error("no token should be issued when the audit append fails")
	}
}

func TestLogin_StoreUnavailable(t *testing.T) {
	sink := &recordingSink{}
	ms := testStore(t)
	ms.err = store.ErrUnavailable
	a := New(ms, testDB(t), sink, Options{Secret: "test-secret"})

	_, _, _, err := a.Login(context.Background(), "student1", "Student@2024", "", client)
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("Login() error = %v, want ErrUnavailable", err)
	}
	if len(sink.byKind(audit.KindError)) != 1 {
		t.Errorf("error records = %d, want 1", len(sink.byKind(audit.KindError)))
	}
	if len(sink.byKind(audit.KindLoginFailure)) != 0 {
		t.Error("store outage must not be recorded as a credential failure")
	}
}

func TestResolve_Invalid(t *testing.T) {
	a, _ := newTestAuthenticator(t, Options{})
	ctx := context.Background()

	if _, err := a.Resolve(ctx, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("empty token error = %v, want ErrUnauthenticated", err)
	}
	if _, err := a.Resolve(ctx, "garbage.token.here"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("garbage token error = %v, want ErrUnauthenticated", err)
	}

	// token signed with a different secret
	forged, err := GenerateToken("other-secret", "some-session", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := a.Resolve(ctx, forged); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("forged token error = %v, want ErrUnauthenticated", err)
	}

	// well-formed token referencing no session row
	orphan, _ := GenerateToken("test-secret", "no-such-session", time.Hour)
	if _, err := a.Resolve(ctx, orphan); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("orphan token error = %v, want ErrUnauthenticated", err)
	}
}

func TestResolve_ExpiredSession(t *testing.T) {
	a, _ := newTestAuthenticator(t, Options{SessionTimeout: time.Hour})
	ctx := context.Background()

	_, token, _, err := a.Login(ctx, "student1", "Student@2024", "", client)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// age the session row past its expiry
	session, _ := a.Resolve(ctx, token)
	if err := a.db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error; err != nil {
		t.Fatalf("age session: %v", err)
	}

	if _, err := a.Resolve(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expired session error = %v, want ErrUnauthenticated", err)
	}
}

func TestLogout(t *testing.T) {
	a, sink := newTestAuthenticator(t, Options{})
	ctx := context.Background()

	_, token, _, err := a.Login(ctx, "faculty1", "Faculty@2024", "", client)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	session, err := a.Logout(ctx, token, client)
	if err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if session == nil || session.Username != "faculty1" {
		t.Fatalf("Logout() session = %+v, want faculty1", session)
	}

	if _, err := a.Resolve(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Resolve after logout error = %v, want ErrUnauthenticated", err)
	}
	if len(sink.byKind(audit.KindLogout)) != 1 {
		t.Errorf("logout records = %d, want 1", len(sink.byKind(audit.KindLogout)))
	}

	// logging out again is a no-op, not an error
	again, err := a.Logout(ctx, token, client)
	if err != nil || again != nil {
		t.Errorf("second Logout() = (%v, %v), want (nil, nil)", again, err)
	}
	if len(sink.byKind(audit.KindLogout)) != 1 {
		t.Error("idempotent logout must not append another record")
	}
}

func TestDenyRole(t *testing.T) {
	a, sink := newTestAuthenticator(t, Options{})
	session := &models.Session{ID: "s1", Username: "student1", Role: models.RoleStudent}

	if err := a.DenyRole(context.Background(), session, models.RoleFaculty, "/faculty/dashboard", client); err != nil {
		t.Fatalf("DenyRole() error = %v", err)
	}

	denied := sink.byKind(audit.KindAuthzDenied)
	if len(denied) != 1 {
		t.Fatalf("authz_denied records = %d, want 1", len(denied))
	}
	if !strings.Contains(denied[0].Detail, "/faculty/dashboard") {
		t.Errorf("detail = %q, want the path included", denied[0].Detail)
	}
}

func TestGenerateParseToken(t *testing.T) {
	token, err := GenerateToken("secret", "session-123", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("SessionID = %q, want session-123", claims.SessionID)
	}

	if _, err := ParseToken("wrong", token); err == nil {
		t.Error("ParseToken with wrong secret error = nil, want error")
	}

	expired, _ := GenerateToken("secret", "session-123", -time.Minute)
	if _, err := ParseToken("secret", expired); err == nil {
		t.Error("ParseToken with expired token error = nil, want error")
	}
}
