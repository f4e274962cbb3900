package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/instantshare/relay/pkg/config"
	"github.com/instantshare/relay/pkg/types"
)

// maxCodeAttempts bounds auto-generation retries. Some policies have a
// code space as small as 10 values, so collisions are a normal outcome
// rather than an anomaly.
const maxCodeAttempts = 10

// Session groups the files shared among participants who know its code.
// Files keep upload order and are never reordered.
type Session struct {
	Code         string
	Files        []*File
	LastActivity time.Time
}

// File is a single uploaded file with its decoded payload. Records are
// immutable after creation and live until their session is swept.
type File struct {
	ID         string
	Name       string
	MimeType   string
	Size       int64
	Payload    []byte
	UploadedBy string
	UploadedAt time.Time
}

// FileInput carries client-declared upload fields. Name and MimeType are
// untrusted and not validated against content. Data is either raw bytes
// or a self-describing data URL.
type FileInput struct {
	Name       string
	MimeType   string
	Size       int64
	Data       string
	UploadedBy string
}

// Registry is the process-wide table of live sessions. A single lock
// covers registry and session mutations; at relay scale the coarse lock
// keeps appends, activity touches and the sweep mutually exclusive
// without per-session bookkeeping.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	autoPolicy       CodePolicy
	explicitPolicy   CodePolicy
	maxFileSize      int64
	implicitSessions bool

	// now is swappable so tests can control activity timestamps.
	now func() time.Time
}

// NewRegistry creates an empty registry from relay policy settings
func NewRegistry(cfg *config.RelayConfig) (*Registry, error) {
	autoPolicy, err := PolicyByName(cfg.CodePolicy)
	if err != nil {
		return nil, fmt.Errorf("auto code policy: %w", err)
	}
	explicitPolicy, err := PolicyByName(cfg.ExplicitCodePolicy)
	if err != nil {
		return nil, fmt.Errorf("explicit code policy: %w", err)
	}

	return &Registry{
		sessions:         make(map[string]*Session),
		autoPolicy:       autoPolicy,
		explicitPolicy:   explicitPolicy,
		maxFileSize:      cfg.MaxFileSize,
		implicitSessions: cfg.ImplicitSessions,
		now:              time.Now,
	}, nil
}

// Create mints a fresh session under an auto-generated code. Generation
// retries on collision up to maxCodeAttempts and then gives up with
// ErrExhaustedRetries.
func (r *Registry) Create() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < maxCodeAttempts; i++ {
		code := r.autoPolicy.Generate()
		if _, exists := r.sessions[code]; exists {
			continue
		}
		r.sessions[code] = &Session{Code: code, LastActivity: r.now()}
		log.Info().Str("session", code).Msg("session created")
		return code, nil
	}

	log.Warn().
		Str("policy", r.autoPolicy.Name()).
		Int("attempts", maxCodeAttempts).
		Msg("code generation kept colliding")
	return "", ErrExhaustedRetries
}

// CreateWithCode registers a session under a client-chosen code. The
// code must match the explicit code policy and must not already be in
// use; a collision leaves the existing session untouched.
func (r *Registry) CreateWithCode(code string) error {
	if !r.explicitPolicy.Validate(code) {
		return fmt.Errorf("%w: %q (want %s)", ErrBadFormat, code, r.explicitPolicy.Name())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[code]; exists {
		return ErrCodeInUse
	}
	r.sessions[code] = &Session{Code: code, LastActivity: r.now()}
	log.Info().Str("session", code).Msg("session created with explicit code")
	return nil
}

// Describe returns the session's file metadata in upload order, without
// payloads, and refreshes its activity timestamp.
func (r *Registry) Describe(code string) (*types.SessionInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[code]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, code)
	}
	sess.LastActivity = r.now()

	files := make([]types.FileMeta, 0, len(sess.Files))
	for _, f := range sess.Files {
		files = append(files, fileMeta(f))
	}
	return &types.SessionInfo{
		SessionID: code,
		FileCount: len(files),
		Files:     files,
	}, nil
}

// AddFile validates, decodes and appends an upload to the session's
// file list, refreshing the activity timestamp. With implicit sessions
// enabled an unknown code silently creates the session, so a sender-side
// code typo still yields a working session; the returned bool reports
// whether that happened. The declared size is checked before decoding
// and the decoded length is checked again, so an understated declared
// size cannot smuggle an oversized payload past the limit.
func (r *Registry) AddFile(code string, in FileInput) (types.FileMeta, bool, error) {
	if in.Size > r.maxFileSize {
		return types.FileMeta{}, false, fmt.Errorf("%w: declared %d bytes, limit %d", ErrTooLarge, in.Size, r.maxFileSize)
	}

	payload, embeddedType, err := decodePayload(in.Data)
	if err != nil {
		return types.FileMeta{}, false, err
	}
	if int64(len(payload)) > r.maxFileSize {
		return types.FileMeta{}, false, fmt.Errorf("%w: decoded %d bytes, limit %d", ErrTooLarge, len(payload), r.maxFileSize)
	}

	mimeType := in.MimeType
	if embeddedType != "" {
		mimeType = embeddedType
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := false
	sess, ok := r.sessions[code]
	if !ok {
		if !r.implicitSessions {
			return types.FileMeta{}, false, fmt.Errorf("%w: session %s", ErrNotFound, code)
		}
		// Implicit creation deliberately skips code policy validation.
		sess = &Session{Code: code}
		r.sessions[code] = sess
		created = true
		log.Info().Str("session", code).Msg("session created implicitly by upload")
	}

	file := &File{
		ID:         uuid.NewString(),
		Name:       in.Name,
		MimeType:   mimeType,
		Size:       in.Size,
		Payload:    payload,
		UploadedBy: in.UploadedBy,
		UploadedAt: r.now(),
	}
	sess.Files = append(sess.Files, file)
	sess.LastActivity = r.now()

	log.Info().
		Str("session", code).
		Str("file_id", file.ID).
		Str("name", file.Name).
		Str("mime_type", file.MimeType).
		Int64("size", file.Size).
		Msg("file uploaded")

	return fileMeta(file), created, nil
}

// GetFile returns the full record for one file, payload included, and
// refreshes the session's activity timestamp. The caller must not
// mutate the returned record.
func (r *Registry) GetFile(code, fileID string) (*File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[code]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, code)
	}
	sess.LastActivity = r.now()

	for _, f := range sess.Files {
		if f.ID == fileID {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: file %s in session %s", ErrNotFound, fileID, code)
}

// SweepExpired removes every session idle for longer than ttl and
// returns how many were removed. It shares the registry lock with the
// request path, so it cannot race a concurrent append or touch.
func (r *Registry) SweepExpired(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	removed := 0
	for code, sess := range r.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(r.sessions, code)
			removed++
			log.Info().Str("session", code).Msg("expired session swept")
		}
	}
	return removed
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func fileMeta(f *File) types.FileMeta {
	return types.FileMeta{
		ID:         f.ID,
		Name:       f.Name,
		Type:       f.MimeType,
		Size:       f.Size,
		UploadedBy: f.UploadedBy,
		UploadedAt: f.UploadedAt,
	}
}
