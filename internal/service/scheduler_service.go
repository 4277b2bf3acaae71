package service

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/shiftsync/timetable-api/internal/dto"
	"github.com/shiftsync/timetable-api/internal/models"
	"github.com/shiftsync/timetable-api/internal/scheduler"
	"github.com/shiftsync/timetable-api/internal/validate"
	appErrors "github.com/shiftsync/timetable-api/pkg/errors"
)

// ValidationFailure carries the pre-solve validator's human-readable
// reasons. The handler type-asserts this to build the §6 HTTP 400 body
// rather than the generic error envelope.
type ValidationFailure struct {
	Errors []string
}

func (e *ValidationFailure) Error() string {
	return "generation payload failed pre-solve validation"
}

// cacheClient is the subset of pkg/cache's Redis client the service
// needs — a narrow seam so tests can fake it without a live Redis.
type cacheClient interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// runRecorder is the audit-trail seam: it persists only run metadata
// (id, outcome, timing, size), never the domain model or the generated
// schedule, so it stays outside the persistence Non-goal.
type runRecorder interface {
	Record(ctx context.Context, run RunRecord) error
}

// RunRecord is one audit-trail row.
type RunRecord struct {
	ID           string
	Outcome      string
	TotalClasses int
	DurationMS   int64
	CreatedAt    time.Time
}

// metricsRecorder is the Prometheus seam; nil-safe no-op when absent.
type metricsRecorder interface {
	ObserveGenerate(outcome string, cached bool, duration time.Duration)
}

// SchedulerService is the HTTP-facing wrapper around the scheduler
// engine: it validates, checks the cache, runs the solve, and records
// the audit trail and metrics around it. None of that touches the
// engine's own contract — caching and the audit trail are both pure
// additions over the deterministic core.
type SchedulerService struct {
	validator *validator.Validate
	logger    *zap.Logger
	cache     cacheClient
	runs      runRecorder
	metrics   metricsRecorder
	budget    time.Duration
	cacheTTL  time.Duration
}

// NewSchedulerService wires the service's collaborators. cache, runs,
// and metrics may all be nil: caching, the audit trail, and metrics
// collection are each optional and best-effort.
func NewSchedulerService(
	validate *validator.Validate,
	logger *zap.Logger,
	cache cacheClient,
	runs runRecorder,
	metrics metricsRecorder,
	budget time.Duration,
	cacheTTL time.Duration,
) *SchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if budget <= 0 {
		budget = scheduler.DefaultBudget
	}
	return &SchedulerService{
		validator: validate,
		logger:    logger,
		cache:     cache,
		runs:      runs,
		metrics:   metrics,
		budget:    budget,
		cacheTTL:  cacheTTL,
	}
}

// Generate runs the full pipeline for one HTTP request: struct
// validation, the arithmetic pre-solve checks, a cache lookup keyed by
// content hash, and — on a miss — the constraint solve itself.
func (s *SchedulerService) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed generation payload")
	}

	payload := toModel(req)
	result := validate.Payload(payload)
	if !result.OK() {
		return nil, &ValidationFailure{Errors: result.Errors}
	}

	hash, seed := contentHashAndSeed(payload)
	cacheKey := "timetable:generate:" + hash

	start := time.Now()

	if s.cache != nil {
		if cached, hit, err := s.cache.Get(ctx, cacheKey); err == nil && hit {
			var resp dto.GenerateResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				resp.Cached = true
				s.recordMetrics("success", true, time.Since(start))
				return &resp, nil
			}
		}
	}

	runID := uuid.NewString()
	solved := scheduler.Generate(ctx, payload, seed, s.budget)
	duration := time.Since(start)

	if solved.Outcome != scheduler.OutcomeSuccess {
		s.logger.Info("generation infeasible", zap.String("run_id", runID), zap.Duration("duration", duration))
		s.recordMetrics("infeasible", false, duration)
		s.recordRun(ctx, RunRecord{ID: runID, Outcome: "infeasible", DurationMS: duration.Milliseconds(), CreatedAt: start})
		return nil, appErrors.Clone(appErrors.ErrInfeasible, "no feasible schedule exists for the given constraints")
	}

	resp := &dto.GenerateResponse{
		Status:       "success",
		Message:      "timetable generated successfully",
		TotalClasses: len(solved.Schedule),
		Schedule:     toScheduleResults(solved.Schedule),
		RunID:        runID,
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(ctx, cacheKey, string(encoded), s.cacheTTL)
		}
	}

	s.logger.Info("generation succeeded",
		zap.String("run_id", runID),
		zap.Int("total_classes", resp.TotalClasses),
		zap.Duration("duration", duration))
	s.recordMetrics("success", false, duration)
	s.recordRun(ctx, RunRecord{ID: runID, Outcome: "success", TotalClasses: resp.TotalClasses, DurationMS: duration.Milliseconds(), CreatedAt: start})

	return resp, nil
}

func (s *SchedulerService) recordMetrics(outcome string, cached bool, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveGenerate(outcome, cached, d)
	}
}

func (s *SchedulerService) recordRun(ctx context.Context, rec RunRecord) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Record(ctx, rec); err != nil {
		s.logger.Warn("failed to record run audit trail", zap.Error(err), zap.String("run_id", rec.ID))
	}
}

// contentHashAndSeed derives a stable cache key and solver seed from the
// normalized payload, so identical input always hashes identically and
// the solver's branch order is reproducible across calls.
func contentHashAndSeed(p models.GenerationPayload) (string, uint64) {
	encoded, _ := json.Marshal(p)
	sum := blake2b.Sum256(encoded)
	seed := binary.BigEndian.Uint64(sum[:8])
	return hex.EncodeToString(sum[:]), seed
}

func toModel(req dto.GenerateRequest) models.GenerationPayload {
	rules := make([]models.CustomRule, len(req.CollegeSettings.CustomRules))
	for i, r := range req.CollegeSettings.CustomRules {
		rules[i] = models.CustomRule{
			ID:                r.ID,
			ConditionField:    r.ConditionField,
			ConditionOperator: r.ConditionOperator,
			ConditionValue:    r.ConditionValue,
			ActionType:        models.CustomRuleAction(r.ActionType),
			ActionValue:       r.ActionValue,
		}
	}

	rooms := make([]models.Room, len(req.RoomsConfig.Rooms))
	for i, r := range req.RoomsConfig.Rooms {
		rooms[i] = models.Room{ID: r.ID, Type: r.Type, Capacity: r.Capacity, Tags: r.Tags}
	}

	return models.GenerationPayload{
		CollegeSettings: models.CollegeSettings{
			DaysActive:            req.CollegeSettings.DaysActive,
			TimeSlots:             req.CollegeSettings.TimeSlots,
			LunchSlot:             req.CollegeSettings.LunchSlot,
			MaxContinuousLectures: req.CollegeSettings.MaxContinuousLectures,
			CustomRules:           rules,
		},
		RoomsConfig: models.RoomsConfig{Rooms: rooms},
		Faculty:     toFacultyModels(req.Faculty),
	}
}
