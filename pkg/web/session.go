package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/gemini-image-studio/pkg/domain"
	"github.com/shouni/gemini-image-studio/pkg/history"
	"github.com/shouni/gemini-image-studio/pkg/metrics"
)

const (
	SessionCookieName = "studio_session"
	// DefaultSessionTTL を過ぎて利用されなかったセッションは破棄されます。
	DefaultSessionTTL = 24 * time.Hour
	sweepInterval     = time.Minute
)

// Flash は次のページ表示で 1 度だけ表示するメッセージです。
type Flash struct {
	Level string // success, info, warning, error
	Text  string
}

// Session はブラウザセッションごとの状態です。履歴は history.Store が、それ以外は mu が保護します。
type Session struct {
	ID        uuid.UUID
	Generated *history.Store[domain.GeneratedImage]
	Edited    *history.Store[domain.EditedImage]

	mu            sync.Mutex
	base          *domain.ImageRef
	baseVersion   int
	department    string
	style         string
	flashes       []Flash
	refinedPrompt string
	lastGenerated []uuid.UUID
	lastEdited    []uuid.UUID
	lastSeen      time.Time
}

func newSession(id uuid.UUID, now time.Time) *Session {
	return &Session{
		ID:        id,
		Generated: history.New[domain.GeneratedImage](),
		Edited:    history.New[domain.EditedImage](),
		lastSeen:  now,
	}
}

// SetBase は編集対象の画像を設定します。アップロードや別の画像の選択で置き換わります。
func (s *Session) SetBase(ref domain.ImageRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = &ref
	s.baseVersion++
}

// Base は現在の編集対象の画像を返します。
func (s *Session) Base() (domain.ImageRef, bool) {
	ref, _, ok := s.versionedBase()
	return ref, ok
}

// versionedBase は編集対象の画像と、SetBase のたびに増える版番号を返します。
func (s *Session) versionedBase() (domain.ImageRef, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.base == nil {
		return domain.ImageRef{}, 0, false
	}
	return *s.base, s.baseVersion, true
}

// rememberSelection は生成フォームで最後に選ばれた部署とスタイルを保持します。
func (s *Session) rememberSelection(department, style string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.department = department
	s.style = style
}

func (s *Session) selection() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.department, s.style
}

func (s *Session) addFlash(level, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Level: level, Text: text})
}

// popFlashes は溜まっているメッセージを返して空にします。
func (s *Session) popFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

func (s *Session) setLastGeneration(refined string, ids []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refinedPrompt = refined
	s.lastGenerated = ids
}

func (s *Session) setLastEdit(ids []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastEdited = ids
}

func (s *Session) lastResults() (string, []uuid.UUID, []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refinedPrompt, s.lastGenerated, s.lastEdited
}

// clear は履歴と直近の結果を消去します。編集対象の画像は残します。
func (s *Session) clear() {
	s.Generated.Clear()
	s.Edited.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refinedPrompt = ""
	s.lastGenerated = nil
	s.lastEdited = nil
}

// SessionRegistry は cookie の UUID とセッション状態を対応付けます。
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*Session
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
	secure    bool
}

// NewSessionRegistry は ttl を過ぎたセッションを破棄する SessionRegistry を返します。
// ttl が 0 以下の場合は DefaultSessionTTL を使います。
func NewSessionRegistry(ttl time.Duration, secureCookie bool) *SessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
		secure:   secureCookie,
	}
}

// Get はリクエストの cookie に対応するセッションを返します。無ければ作成して cookie を発行します。
func (reg *SessionRegistry) Get(w http.ResponseWriter, r *http.Request) *Session {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	reg.sweepLocked(now)

	if c, err := r.Cookie(SessionCookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			if sess, ok := reg.sessions[id]; ok {
				sess.mu.Lock()
				sess.lastSeen = now
				sess.mu.Unlock()
				return sess
			}
		}
	}

	sess := newSession(uuid.New(), now)
	reg.sessions[sess.ID] = sess
	metrics.ActiveSessions.Set(float64(len(reg.sessions)))

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   reg.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Len は保持しているセッション数を返します。
func (reg *SessionRegistry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

func (reg *SessionRegistry) sweepLocked(now time.Time) {
	if now.Sub(reg.lastSweep) < sweepInterval {
		return
	}
	reg.lastSweep = now
	for id, sess := range reg.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastSeen)
		sess.mu.Unlock()
		if idle > reg.ttl {
			delete(reg.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(reg.sessions)))
}
