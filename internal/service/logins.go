package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
)

// LoginsKey is the storage key holding the whole login collection.
const LoginsKey = "@savepass:logins"

// ErrCorruptCollection is returned when the stored collection is not a JSON array of logins.
var ErrCorruptCollection = errors.New("stored login collection is malformed")

// Store is the key/value persistence the login service reads and writes.
type Store interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// LoginRecord is one saved login.
type LoginRecord struct {
	ID          string `json:"id"`
	ServiceName string `json:"service_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginForm carries validated form values.
type LoginForm struct {
	ServiceName string
	Email       string
	Password    string
}

// LoginService appends and reads the login collection.
type LoginService struct {
	Store  Store
	NewID  func() string
	Logger *slog.Logger
}

func (s *LoginService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *LoginService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Register appends a new record built from f and writes the whole collection back.
func (s *LoginService) Register(ctx context.Context, f LoginForm) (LoginRecord, error) {
	rec := LoginRecord{
		ID:          s.newID(),
		ServiceName: f.ServiceName,
		Email:       f.Email,
		Password:    f.Password,
	}
	// prior elements are carried as raw JSON so they are written back untouched
	list, err := s.rawList(ctx)
	if err != nil {
		return LoginRecord{}, err
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return LoginRecord{}, fmt.Errorf("encode login: %w", err)
	}
	list = append(list, encoded)
	data, err := json.Marshal(list)
	if err != nil {
		return LoginRecord{}, fmt.Errorf("encode logins: %w", err)
	}
	if err := s.Store.SetItem(ctx, LoginsKey, string(data)); err != nil {
		return LoginRecord{}, fmt.Errorf("write logins: %w", err)
	}
	s.logger().Info("login registered", "id", rec.ID, "service", rec.ServiceName, "total", len(list))
	return rec, nil
}

func (s *LoginService) rawList(ctx context.Context) ([]json.RawMessage, error) {
	raw, ok, err := s.Store.GetItem(ctx, LoginsKey)
	if err != nil {
		return nil, fmt.Errorf("read logins: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
	}
	return list, nil
}

// List returns the stored records in insertion order. An absent key is an empty list.
func (s *LoginService) List(ctx context.Context) ([]LoginRecord, error) {
	raw, ok, err := s.Store.GetItem(ctx, LoginsKey)
	if err != nil {
		return nil, fmt.Errorf("read logins: %w", err)
	}
	if !ok {
		return []LoginRecord{}, nil
	}
	var list []LoginRecord
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
	}
	if list == nil {
		list = []LoginRecord{}
	}
	return list, nil
}

// Search returns records whose service name matches query. Substring matches
// come first, then names within a small edit distance. An empty query returns
// every record.
func (s *LoginService) Search(ctx context.Context, query string) ([]LoginRecord, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return rankByService(list, query), nil
}

type scored struct {
	rec   LoginRecord
	score float64
}

func rankByService(list []LoginRecord, query string) []LoginRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	var hits []scored
	for _, rec := range list {
		name := strings.ToLower(rec.ServiceName)
		if idx := strings.Index(name, q); idx >= 0 {
			hits = append(hits, scored{rec: rec, score: float64(idx) / 1000})
			continue
		}
		dist := levenshtein.ComputeDistance(q, name)
		maxlen := max(len(q), len(name))
		if ratio := float64(dist) / float64(maxlen); ratio < 0.4 {
			hits = append(hits, scored{rec: rec, score: 1 + ratio})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	out := make([]LoginRecord, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.rec)
	}
	return out
}
