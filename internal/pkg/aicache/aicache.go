package aicache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/politiekmatcher/core/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ComputeFunc produces the value for a fingerprint. It must be pure with
// respect to the fingerprinted inputs: the cache assumes a stored result
// never diverges from a fresh recomputation.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Store is the durable half of the cache.
type Store interface {
	Load(ctx context.Context, fingerprint string) ([]byte, bool, error)
	Save(ctx context.Context, kind, fingerprint string, result []byte) error
	Delete(ctx context.Context, fingerprint string) error
}

// Service memoizes expensive AI-backed computations. At most one computation
// per fingerprint is in flight at any time; concurrent callers for the same
// fingerprint share the in-flight result. Failed computations are never
// stored, so a later call retries.
type Service struct {
	store   Store
	group   singleflight.Group
	logger  *zap.Logger
	timeout time.Duration
}

func NewService(store Store, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{store: store, logger: logger, timeout: timeout}
}

// GetOrCompute returns the cached result for fingerprint, computing and
// storing it on a miss. The computation runs detached from the triggering
// caller's context so that other waiters survive its cancellation; each
// computation carries its own timeout.
func (s *Service) GetOrCompute(ctx context.Context, kind, fingerprint string, compute ComputeFunc) ([]byte, error) {
	if cached, ok, err := s.store.Load(ctx, fingerprint); err != nil {
		return nil, fmt.Errorf("ai cache load: %w", err)
	} else if ok {
		return cached, nil
	}

	ch := s.group.DoChan(fingerprint, func() (interface{}, error) {
		cctx := context.WithoutCancel(ctx)
		if s.timeout > 0 {
			var cancel context.CancelFunc
			cctx, cancel = context.WithTimeout(cctx, s.timeout)
			defer cancel()
		}

		// A racing caller may have stored the value between our miss and
		// the flight start.
		if cached, ok, err := s.store.Load(cctx, fingerprint); err == nil && ok {
			return cached, nil
		}

		result, err := compute(cctx)
		if err != nil {
			return nil, err
		}
		if err := s.store.Save(cctx, kind, fingerprint, result); err != nil {
			s.logger.Warn("ai cache store failed",
				zap.String("kind", kind),
				zap.String("fingerprint", fingerprint),
				zap.Error(err))
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate drops the durable entry for fingerprint. In-flight computations
// are forgotten so the next call starts fresh.
func (s *Service) Invalidate(ctx context.Context, fingerprint string) error {
	s.group.Forget(fingerprint)
	return s.store.Delete(ctx, fingerprint)
}

// Fingerprint hashes the semantically relevant inputs of a computation into
// a stable cache key. Parts are length-delimited so no two distinct part
// lists collide by concatenation.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeText canonicalizes free text for fingerprinting: trimmed,
// lowercased, inner whitespace collapsed.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// GormStore persists cache entries in the ai_results table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (g *GormStore) Load(ctx context.Context, fingerprint string) ([]byte, bool, error) {
	var row models.AIResultModel
	err := g.db.WithContext(ctx).Where("fingerprint = ?", fingerprint).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row.Result, true, nil
}

func (g *GormStore) Save(ctx context.Context, kind, fingerprint string, result []byte) error {
	row := models.AIResultModel{Fingerprint: fingerprint, Kind: kind, Result: result}
	return g.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		Assign(row).
		FirstOrCreate(&row).Error
}

func (g *GormStore) Delete(ctx context.Context, fingerprint string) error {
	return g.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		Delete(&models.AIResultModel{}).Error
}
